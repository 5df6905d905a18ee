package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadReferenceFile loads video references from a text file, one per line.
// Blank lines and lines starting with # are skipped.
func ReadReferenceFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference file: %w", err)
	}
	defer file.Close()

	var references []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		references = append(references, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	return references, nil
}
