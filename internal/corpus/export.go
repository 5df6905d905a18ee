package corpus

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"subseek/internal/services"
)

var exportHeader = []string{
	"video_id", "video_reference", "text",
	"start_time", "end_time", "duration",
	"sequence_number", "created_at",
}

// ExportCSV writes every record to w as CSV, one record per row with a header
// row, ordered by (video_id, start_time). Returns the number of rows written.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM subtitles ORDER BY video_id, start_time",
	)
	if err != nil {
		return 0, services.Wrap(services.ErrStorage, "corpus", "export", "", err)
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, services.Wrap(services.ErrStorage, "corpus", "export", "write header", err)
	}

	written := 0
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return written, services.Wrap(services.ErrStorage, "corpus", "export", "scan", err)
		}
		row := []string{
			record.VideoID,
			record.VideoReference,
			record.Text,
			strconv.FormatFloat(record.StartTime, 'f', -1, 64),
			strconv.FormatFloat(record.EndTime, 'f', -1, 64),
			strconv.FormatFloat(record.Duration, 'f', -1, 64),
			strconv.Itoa(record.SequenceNumber),
			record.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := writer.Write(row); err != nil {
			return written, services.Wrap(services.ErrStorage, "corpus", "export", "write row", err)
		}
		written++
	}
	if err := rows.Err(); err != nil {
		return written, services.Wrap(services.ErrStorage, "corpus", "export", "iterate", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, services.Wrap(services.ErrStorage, "corpus", "export", "flush", err)
	}
	return written, nil
}
