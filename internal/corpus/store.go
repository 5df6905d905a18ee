package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"subseek/internal/config"
	"subseek/internal/services"
)

// Store manages subtitle record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the corpus database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// InsertIfAbsent inserts a record and reports whether a new row was actually
// added. A record matching an existing (video_id, start_time, text) triple is
// silently dropped and the call returns false.
func (s *Store) InsertIfAbsent(ctx context.Context, record Record) (bool, error) {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO subtitles (
            video_id, video_reference, text, start_time, end_time,
            duration, sequence_number, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.VideoID,
		record.VideoReference,
		record.Text,
		record.StartTime,
		record.EndTime,
		record.Duration,
		record.SequenceNumber,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, services.Wrap(services.ErrStorage, "corpus", "insert", "", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, services.Wrap(services.ErrStorage, "corpus", "insert", "rows affected", err)
	}
	return affected > 0, nil
}

// CountForVideo returns the number of stored records for one video.
func (s *Store) CountForVideo(ctx context.Context, videoID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subtitles WHERE video_id = ?", videoID,
	).Scan(&count)
	if err != nil {
		return 0, services.Wrap(services.ErrStorage, "corpus", "count", "", err)
	}
	return count, nil
}

// VideoCounts returns every distinct video id with its record count, ordered
// by video id.
func (s *Store) VideoCounts(ctx context.Context) ([]VideoCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT video_id, COUNT(*) FROM subtitles GROUP BY video_id ORDER BY video_id",
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "video counts", "", err)
	}
	defer rows.Close()

	var counts []VideoCount
	for rows.Next() {
		var vc VideoCount
		if err := rows.Scan(&vc.VideoID, &vc.Records); err != nil {
			return nil, services.Wrap(services.ErrStorage, "corpus", "video counts", "scan", err)
		}
		counts = append(counts, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "video counts", "iterate", err)
	}
	return counts, nil
}

// Stats summarizes the corpus: record and video totals, summed duration, and
// the five most-captioned videos.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT video_id), COALESCE(SUM(duration), 0) FROM subtitles",
	).Scan(&stats.TotalRecords, &stats.UniqueVideos, &stats.TotalDurationSeconds)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "stats", "", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT video_id, COUNT(*) AS count FROM subtitles
         GROUP BY video_id ORDER BY count DESC LIMIT 5`,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "stats", "top videos", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vc VideoCount
		if err := rows.Scan(&vc.VideoID, &vc.Records); err != nil {
			return nil, services.Wrap(services.ErrStorage, "corpus", "stats", "scan", err)
		}
		stats.TopVideos = append(stats.TopVideos, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "stats", "iterate", err)
	}
	return stats, nil
}

const recordColumns = "id, video_id, video_reference, text, start_time, end_time, duration, sequence_number, created_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		record     Record
		createdRaw string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.VideoID,
		&record.VideoReference,
		&record.Text,
		&record.StartTime,
		&record.EndTime,
		&record.Duration,
		&record.SequenceNumber,
		&createdRaw,
	); err != nil {
		return Record{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	record.CreatedAt = parsed
	return record, nil
}
