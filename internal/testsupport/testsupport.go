// Package testsupport provides shared helpers for package tests: temp-dir
// configs, corpus stores with registered cleanup, and record seeding.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"subseek/internal/config"
	"subseek/internal/corpus"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CorpusDir = filepath.Join(base, "corpus")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.API.Bind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkers overrides the ingest worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(c *config.Config) {
		c.Ingest.Workers = workers
	}
}

// WithSearch overrides the search defaults on the test config.
func WithSearch(search config.Search) ConfigOption {
	return func(c *config.Config) {
		c.Search = search
	}
}

// MustOpenStore opens a corpus.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *corpus.Store {
	t.Helper()

	store, err := corpus.Open(cfg)
	if err != nil {
		t.Fatalf("corpus.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedRecord inserts a record and fails the test if it was dropped as a
// duplicate.
func SeedRecord(t testing.TB, store *corpus.Store, record corpus.Record) {
	t.Helper()

	inserted, err := store.InsertIfAbsent(context.Background(), record)
	if err != nil {
		t.Fatalf("store.InsertIfAbsent: %v", err)
	}
	if !inserted {
		t.Fatalf("seed record dropped as duplicate: %+v", record)
	}
}
