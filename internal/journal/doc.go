// Package journal keeps an append-only SQLite history of batch runs.
//
// Each run gets a row in runs and one row per processed identifier in
// outcomes, including the report reason and the field changes applied. The
// history answers "what did reklamefix do to this object and when"; a run
// never reads it back to decide what to do.
//
// The layout version lives in SQLite's user_version header field. A journal
// stamped with another version is rejected with ErrSchemaMismatch.
package journal
