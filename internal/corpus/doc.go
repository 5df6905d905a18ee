// Package corpus persists normalized subtitle records in SQLite and answers
// the search, context, stats, and export queries built on them.
//
// The Store owns the database connection, schema initialization, and the
// uniqueness invariant: no two rows share (video_id, start_time, text), and a
// duplicate insert is silently absorbed. Records are append-only; nothing in
// normal operation updates or deletes them. Concurrent writers for different
// videos are safe — SQLite's row-level constraint plus the busy timeout
// serialize conflicting inserts without application locks.
//
// Schema changes bump schemaVersion in schema.go; the database must be
// rebuilt by re-ingesting after a bump.
package corpus
