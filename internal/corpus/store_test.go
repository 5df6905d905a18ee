package corpus_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"subseek/internal/corpus"
	"subseek/internal/services"
	"subseek/internal/testsupport"
)

func record(videoID string, start float64, text string, seq int) corpus.Record {
	return corpus.Record{
		VideoID:        videoID,
		VideoReference: "https://www.youtube.com/watch?v=" + videoID,
		Text:           text,
		StartTime:      start,
		EndTime:        start + 2,
		Duration:       2,
		SequenceNumber: seq,
	}
}

func TestInsertIfAbsentDropsDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := record("dQw4w9WgXcQ", 1.5, "こんにちは", 0)
	inserted, err := store.InsertIfAbsent(ctx, rec)
	if err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to add a row")
	}

	inserted, err = store.InsertIfAbsent(ctx, rec)
	if err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate to be dropped")
	}

	count, err := store.CountForVideo(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("CountForVideo failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored row, got %d", count)
	}
}

func TestInsertDifferentTimesSameText(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedRecord(t, store, record("dQw4w9WgXcQ", 1.0, "はい", 0))
	testsupport.SeedRecord(t, store, record("dQw4w9WgXcQ", 8.0, "はい", 4))

	count, err := store.CountForVideo(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("CountForVideo failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
}

func TestConcurrentWritersDifferentVideos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	videos := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"}
	var wg sync.WaitGroup
	errs := make(chan error, len(videos))
	for _, videoID := range videos {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := store.InsertIfAbsent(ctx, record(id, float64(i), "テスト字幕です", i)); err != nil {
					errs <- err
					return
				}
			}
		}(videoID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent insert failed: %v", err)
	}

	for _, videoID := range videos {
		count, err := store.CountForVideo(ctx, videoID)
		if err != nil {
			t.Fatalf("CountForVideo failed: %v", err)
		}
		if count != 20 {
			t.Fatalf("expected 20 rows for %s, got %d", videoID, count)
		}
	}
}

func TestStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 0, "こんにちは", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 5, "さようなら", 1))
	testsupport.SeedRecord(t, store, record("bbbbbbbbbbb", 0, "おはよう", 0))

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRecords != 3 {
		t.Fatalf("expected 3 records, got %d", stats.TotalRecords)
	}
	if stats.UniqueVideos != 2 {
		t.Fatalf("expected 2 videos, got %d", stats.UniqueVideos)
	}
	if stats.TotalDurationSeconds != 6 {
		t.Fatalf("expected summed duration 6, got %v", stats.TotalDurationSeconds)
	}
	if len(stats.TopVideos) != 2 || stats.TopVideos[0].VideoID != "aaaaaaaaaaa" {
		t.Fatalf("unexpected top videos: %+v", stats.TopVideos)
	}
}

func TestStatsEmptyCorpus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRecords != 0 || stats.UniqueVideos != 0 || stats.TotalDurationSeconds != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestVideoCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.SeedRecord(t, store, record("bbbbbbbbbbb", 0, "おはよう", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 0, "こんにちは", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 3, "ありがとう", 1))

	counts, err := store.VideoCounts(context.Background())
	if err != nil {
		t.Fatalf("VideoCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(counts))
	}
	if counts[0].VideoID != "aaaaaaaaaaa" || counts[0].Records != 2 {
		t.Fatalf("unexpected first entry: %+v", counts[0])
	}
}

func TestExportCSVOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Inserted out of order on purpose.
	testsupport.SeedRecord(t, store, record("bbbbbbbbbbb", 2, "後", 1))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 5, "次", 1))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 1, "先", 0))

	var buf bytes.Buffer
	written, err := store.ExportCSV(context.Background(), &buf)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if written != 3 {
		t.Fatalf("expected 3 rows written, got %d", written)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "video_id,video_reference,text") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	wantOrder := []string{"先", "次", "後"}
	for i, text := range wantOrder {
		if !strings.Contains(lines[i+1], text) {
			t.Fatalf("row %d: expected %q in %q", i+1, text, lines[i+1])
		}
	}
}

func TestCorruptCreatedAtSurfacesStorageError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 0, "こんにちは", 0))

	// Corrupt the timestamp behind the store's back.
	raw, err := sql.Open("sqlite", store.Path())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer raw.Close()
	if _, err := raw.Exec("UPDATE subtitles SET created_at = 'not-a-time'"); err != nil {
		t.Fatalf("corrupt created_at: %v", err)
	}

	if _, err := store.Search(context.Background(), corpus.Query{Term: "こんにちは"}); !errors.Is(err, services.ErrStorage) {
		t.Fatalf("expected ErrStorage for corrupt created_at, got %v", err)
	}

	var buf bytes.Buffer
	if _, err := store.ExportCSV(context.Background(), &buf); !errors.Is(err, services.ErrStorage) {
		t.Fatalf("expected ErrStorage from export, got %v", err)
	}
}

func TestOpenTwiceReusesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 0, "こんにちは", 0))
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	count, err := reopened.CountForVideo(context.Background(), "aaaaaaaaaaa")
	if err != nil {
		t.Fatalf("CountForVideo failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected persisted row after reopen, got %d", count)
	}
}
