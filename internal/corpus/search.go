package corpus

import (
	"context"
	"math"
	"strings"

	"subseek/internal/services"
	"subseek/internal/videoref"
)

// Default result limits applied when a query does not set one.
const (
	DefaultSearchLimit   = 20
	DefaultFilteredLimit = 50
)

// DefaultContextWindowSeconds bounds a context window when the caller does
// not override it.
const DefaultContextWindowSeconds = 10.0

// targetTolerance is the |start_time - target| distance within which a
// context item is flagged as the target. Two captions starting within two
// seconds of each other can both be flagged; that tie-inclusive behavior is
// intended.
const targetTolerance = 1.0

// Filters narrows a search. All set fields are AND-combined.
type Filters struct {
	// MinDuration and MaxDuration are inclusive bounds on record duration.
	MinDuration *float64
	MaxDuration *float64
	// VideoIDs restricts results to the listed videos.
	VideoIDs []string
	// ExcludeShort drops records with fewer than 6 characters of text. A
	// blunt noise heuristic carried over from the source corpus, not a
	// general quality filter.
	ExcludeShort bool
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.MinDuration == nil && f.MaxDuration == nil && len(f.VideoIDs) == 0 && !f.ExcludeShort
}

// Query describes one search. Term is matched as a substring unless Exact is
// set, in which case the full text field must equal it. Matching is SQLite's
// native text comparison: byte-sequence based, which for the CJK corpus means
// effectively case-sensitive.
type Query struct {
	Term    string
	Exact   bool
	Filters Filters
	Limit   int
}

func (q Query) effectiveLimit() int {
	if q.Limit > 0 {
		return q.Limit
	}
	if q.Filters.Empty() {
		return DefaultSearchLimit
	}
	return DefaultFilteredLimit
}

// Search returns records matching the query ordered by (video_id,
// start_time), each enriched with a replay reference for its start time. An
// empty result list means "not found", never an error.
func (s *Store) Search(ctx context.Context, query Query) ([]SearchResult, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(recordColumns)
	sb.WriteString(" FROM subtitles WHERE ")

	args := make([]any, 0, 4+len(query.Filters.VideoIDs))
	if query.Exact {
		sb.WriteString("text = ?")
		args = append(args, query.Term)
	} else {
		sb.WriteString("text LIKE ?")
		args = append(args, "%"+query.Term+"%")
	}

	if query.Filters.MinDuration != nil {
		sb.WriteString(" AND duration >= ?")
		args = append(args, *query.Filters.MinDuration)
	}
	if query.Filters.MaxDuration != nil {
		sb.WriteString(" AND duration <= ?")
		args = append(args, *query.Filters.MaxDuration)
	}
	if ids := query.Filters.VideoIDs; len(ids) > 0 {
		sb.WriteString(" AND video_id IN (?")
		sb.WriteString(strings.Repeat(",?", len(ids)-1))
		sb.WriteString(")")
		for _, id := range ids {
			args = append(args, id)
		}
	}
	if query.Filters.ExcludeShort {
		sb.WriteString(" AND LENGTH(text) > 5")
	}

	sb.WriteString(" ORDER BY video_id, start_time LIMIT ?")
	args = append(args, query.effectiveLimit())

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "search", "", err)
	}
	defer rows.Close()

	results := make([]SearchResult, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStorage, "corpus", "search", "scan", err)
		}
		results = append(results, SearchResult{
			Record:          record,
			ReplayReference: videoref.BuildReplayReference(record.VideoReference, record.StartTime),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "search", "iterate", err)
	}
	return results, nil
}

// Context returns the records for one video whose start time falls within
// [targetTime-windowSeconds, targetTime+windowSeconds], ordered by start
// time. Items starting within one second of targetTime are flagged as the
// target. An empty window is not an error.
func (s *Store) Context(ctx context.Context, videoID string, targetTime, windowSeconds float64) ([]ContextItem, error) {
	if windowSeconds <= 0 {
		windowSeconds = DefaultContextWindowSeconds
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, start_time, end_time, sequence_number FROM subtitles
         WHERE video_id = ? AND start_time BETWEEN ? AND ?
         ORDER BY start_time`,
		videoID, targetTime-windowSeconds, targetTime+windowSeconds,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "context", "", err)
	}
	defer rows.Close()

	items := make([]ContextItem, 0)
	for rows.Next() {
		var item ContextItem
		if err := rows.Scan(&item.Text, &item.StartTime, &item.EndTime, &item.SequenceNumber); err != nil {
			return nil, services.Wrap(services.ErrStorage, "corpus", "context", "scan", err)
		}
		item.IsTarget = math.Abs(item.StartTime-targetTime) < targetTolerance
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorage, "corpus", "context", "iterate", err)
	}
	return items, nil
}
