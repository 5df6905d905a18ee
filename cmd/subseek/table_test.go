package main

import (
	"strings"
	"testing"
)

func TestRenderTableCapsWideColumns(t *testing.T) {
	long := strings.Repeat("字幕のテキスト", 20)
	columns := []tableColumn{
		{title: "Video"},
		{title: "Text", maxWidth: 10},
	}
	rendered := renderTable(columns, [][]string{{"aaaaaaaaaaa", long}})

	if strings.Contains(rendered, long) {
		t.Fatal("expected wide column to be capped")
	}
	for _, line := range strings.Split(rendered, "\n") {
		if len([]rune(line)) > 40 {
			t.Fatalf("line exceeds capped width: %q", line)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	columns := []tableColumn{
		{title: "Video"},
		{title: "Records", align: alignRight},
	}
	rendered := renderTable(columns, [][]string{{"aaaaaaaaaaa"}})
	if !strings.Contains(rendered, "aaaaaaaaaaa") {
		t.Fatalf("expected row content, got:\n%s", rendered)
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	if got := renderTable(nil, nil); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
