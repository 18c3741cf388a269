package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reklamefix/internal/batch"
	"reklamefix/internal/pbcore"
)

// RunStatus is the lifecycle of a journaled run.
type RunStatus string

const (
	RunRunning     RunStatus = "running"
	RunCompleted   RunStatus = "completed"
	RunInterrupted RunStatus = "interrupted"
	RunFailed      RunStatus = "failed"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// Run is one journaled batch invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     RunStatus
	DryRun     bool
	Workers    int
	IDsFile    string
	Total      int
	Updated    int
	Reported   int
	Error      string
}

// Entry is the journaled outcome of one identifier.
type Entry struct {
	RunID      string
	Seq        int
	ObjectID   string
	Category   string
	AssetType  string
	Kind       batch.OutcomeKind
	Reason     string
	State      string
	FailedStep string
	Error      string
	Changes    []pbcore.Change
}

const runColumns = `id, started_at, finished_at, status, dry_run, workers, ids_file, total, updated, reported, error_message`

const entryColumns = `run_id, seq, object_id, category, asset_type, kind, reason, state, failed_step, error_message, changes_json`

// BeginRun records a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, started_at, status, dry_run, workers, ids_file) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), RunRunning, boolToInt(run.DryRun), run.Workers, nullableString(run.IDsFile),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the outcomes of summary and closes the run with status.
// runErr, when set, is kept as the run's error message.
func (s *Store) FinishRun(ctx context.Context, runID string, summary batch.Summary, status RunStatus, runErr error) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin journal tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO outcomes (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare outcome insert: %w", err)
		}
		defer stmt.Close()

		for i, outcome := range summary.Outcomes {
			changes, err := encodeChanges(outcome.Changes)
			if err != nil {
				return err
			}
			errMsg := ""
			if outcome.Err != nil {
				errMsg = outcome.Err.Error()
			}
			if _, err := stmt.ExecContext(ctx,
				runID, i+1, outcome.ID,
				nullableString(string(outcome.Category)),
				nullableString(outcome.AssetType),
				string(outcome.Kind),
				nullableString(outcome.Reason),
				nullableString(outcome.State.String()),
				nullableString(outcome.FailedStep),
				nullableString(errMsg),
				changes,
			); err != nil {
				return fmt.Errorf("insert outcome %s: %w", outcome.ID, err)
			}
		}

		errMsg := ""
		if runErr != nil {
			errMsg = runErr.Error()
		}
		finished := summary.Finished
		if finished.IsZero() {
			finished = time.Now()
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE runs SET finished_at = ?, status = ?, total = ?, updated = ?, reported = ?, error_message = ? WHERE id = ?`,
			formatTime(finished), status, summary.Total(), summary.Count(batch.OutcomeUpdated), summary.Reported(), nullableString(errMsg), runID,
		)
		if err != nil {
			return fmt.Errorf("update run: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return tx.Commit()
	})
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run by id, accepting a unique id prefix.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// Entries returns the outcomes of a run in input order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
}

// ObjectHistory returns every journaled outcome for one object, oldest run first.
func (s *Store) ObjectHistory(ctx context.Context, objectID string) ([]Entry, error) {
	return s.queryEntries(ctx,
		`SELECT o.run_id, o.seq, o.object_id, o.category, o.asset_type, o.kind, o.reason, o.state, o.failed_step, o.error_message, o.changes_json
         FROM outcomes o JOIN runs r ON r.id = o.run_id
         WHERE o.object_id = ? ORDER BY r.started_at, o.seq`,
		objectID,
	)
}

func (s *Store) queryEntries(ctx context.Context, query string, arg string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, arg)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry                                                    Entry
			category, assetType, reason, state, step, errMsg, change sql.NullString
			kind                                                     string
		)
		if err := rows.Scan(&entry.RunID, &entry.Seq, &entry.ObjectID, &category, &assetType, &kind,
			&reason, &state, &step, &errMsg, &change); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		entry.Category = category.String
		entry.AssetType = assetType.String
		entry.Kind = batch.OutcomeKind(kind)
		entry.Reason = reason.String
		entry.State = state.String
		entry.FailedStep = step.String
		entry.Error = errMsg.String
		if change.Valid && change.String != "" {
			if err := json.Unmarshal([]byte(change.String), &entry.Changes); err != nil {
				return nil, fmt.Errorf("decode changes of %s: %w", entry.ObjectID, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run               Run
		started, finished sql.NullString
		status            string
		dryRun            int
		idsFile, errMsg   sql.NullString
	)
	if err := row.Scan(&run.ID, &started, &finished, &status, &dryRun, &run.Workers, &idsFile,
		&run.Total, &run.Updated, &run.Reported, &errMsg); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Status = RunStatus(status)
	run.DryRun = dryRun != 0
	run.IDsFile = idsFile.String
	run.Error = errMsg.String
	return run, nil
}

func encodeChanges(changes []pbcore.Change) (any, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encode changes: %w", err)
	}
	return string(data), nil
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
