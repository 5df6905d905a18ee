package corpus_test

import (
	"context"
	"strings"
	"testing"

	"subseek/internal/corpus"
	"subseek/internal/testsupport"
)

func seedSearchFixture(t *testing.T) *corpus.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Two videos, interleaved insertion order.
	testsupport.SeedRecord(t, store, record("bbbbbbbbbbb", 10, "こんにちは世界", 2))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 20, "こんにちは", 3))
	testsupport.SeedRecord(t, store, record("bbbbbbbbbbb", 1, "さようなら", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 5, "こんにちは皆さん", 1))
	return store
}

func TestSearchSubstringOrdering(t *testing.T) {
	store := seedSearchFixture(t)

	results, err := store.Search(context.Background(), corpus.Query{Term: "こんにちは"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}
	// Grouped by video id, ascending start time — never insertion order.
	wantVideo := []string{"aaaaaaaaaaa", "aaaaaaaaaaa", "bbbbbbbbbbb"}
	wantStart := []float64{5, 20, 10}
	for i, result := range results {
		if result.VideoID != wantVideo[i] || result.StartTime != wantStart[i] {
			t.Fatalf("result %d: got (%s, %v), want (%s, %v)",
				i, result.VideoID, result.StartTime, wantVideo[i], wantStart[i])
		}
	}
}

func TestSearchExactMatch(t *testing.T) {
	store := seedSearchFixture(t)

	results, err := store.Search(context.Background(), corpus.Query{Term: "こんにちは", Exact: true})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 exact match, got %d", len(results))
	}
	if results[0].Text != "こんにちは" {
		t.Fatalf("unexpected match %q", results[0].Text)
	}
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	store := seedSearchFixture(t)

	results, err := store.Search(context.Background(), corpus.Query{Term: "存在しない"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestSearchReplayReference(t *testing.T) {
	store := seedSearchFixture(t)

	results, err := store.Search(context.Background(), corpus.Query{Term: "さようなら"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if !strings.HasSuffix(results[0].ReplayReference, "&t=1s") {
		t.Fatalf("unexpected replay reference %q", results[0].ReplayReference)
	}
}

func TestSearchFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	long := record("aaaaaaaaaaa", 0, "とても長い字幕のテキストです", 0)
	long.Duration = 8
	long.EndTime = 8
	testsupport.SeedRecord(t, store, long)

	short := record("aaaaaaaaaaa", 10, "短い", 1)
	short.Duration = 1
	short.EndTime = 11
	testsupport.SeedRecord(t, store, short)

	other := record("bbbbbbbbbbb", 0, "別の動画の字幕", 0)
	other.Duration = 3
	other.EndTime = 3
	testsupport.SeedRecord(t, store, other)

	ctx := context.Background()

	minDur := 2.0
	results, err := store.Search(ctx, corpus.Query{Term: "字幕", Filters: corpus.Filters{MinDuration: &minDur}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("min duration: expected 2 matches, got %d", len(results))
	}

	maxDur := 1.5
	results, err = store.Search(ctx, corpus.Query{Term: "い", Filters: corpus.Filters{MaxDuration: &maxDur}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Text != "短い" {
		t.Fatalf("max duration: unexpected results %+v", results)
	}

	results, err = store.Search(ctx, corpus.Query{Term: "字幕", Filters: corpus.Filters{VideoIDs: []string{"bbbbbbbbbbb"}}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].VideoID != "bbbbbbbbbbb" {
		t.Fatalf("video filter: unexpected results %+v", results)
	}

	results, err = store.Search(ctx, corpus.Query{Term: "い", Filters: corpus.Filters{ExcludeShort: true}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, result := range results {
		if len([]rune(result.Text)) < 6 {
			t.Fatalf("exclude short: %q should have been dropped", result.Text)
		}
	}
}

func TestSearchLimits(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	for i := 0; i < 30; i++ {
		testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", float64(i), "同じ言葉です", i))
	}

	ctx := context.Background()
	results, err := store.Search(ctx, corpus.Query{Term: "言葉"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != corpus.DefaultSearchLimit {
		t.Fatalf("expected default limit %d, got %d", corpus.DefaultSearchLimit, len(results))
	}

	results, err = store.Search(ctx, corpus.Query{Term: "言葉", Filters: corpus.Filters{ExcludeShort: true}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 30 {
		t.Fatalf("expected all 30 under filtered limit, got %d", len(results))
	}

	results, err = store.Search(ctx, corpus.Query{Term: "言葉", Limit: 7})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 7 {
		t.Fatalf("expected explicit limit 7, got %d", len(results))
	}
}

func TestContextWindowBoundary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 89.9, "窓の外", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 90.0, "窓の内", 1))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 100.0, "真ん中", 2))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 110.0, "上の端", 3))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 110.1, "外れた", 4))

	items, err := store.Context(context.Background(), "aaaaaaaaaaa", 100.0, 10)
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items in window, got %d: %+v", len(items), items)
	}
	if items[0].StartTime != 90.0 {
		t.Fatalf("expected window to start at 90.0, got %v", items[0].StartTime)
	}
	if items[len(items)-1].StartTime != 110.0 {
		t.Fatalf("expected window to end at 110.0, got %v", items[len(items)-1].StartTime)
	}
}

func TestContextMarksTargetTieInclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 99.5, "候補一", 0))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 100.2, "候補二", 1))
	testsupport.SeedRecord(t, store, record("aaaaaaaaaaa", 105.0, "遠い行", 2))

	items, err := store.Context(context.Background(), "aaaaaaaaaaa", 100.0, 10)
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	// Both captions within one second of the target are flagged.
	if !items[0].IsTarget || !items[1].IsTarget {
		t.Fatalf("expected both near captions flagged: %+v", items)
	}
	if items[2].IsTarget {
		t.Fatalf("distant caption should not be flagged: %+v", items[2])
	}
}

func TestContextEmptyWindow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	items, err := store.Context(context.Background(), "aaaaaaaaaaa", 50.0, 10)
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty context, got %+v", items)
	}
}
