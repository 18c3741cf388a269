package batch

import (
	"fmt"
	"time"

	"reklamefix/internal/doms"
	"reklamefix/internal/fixer"
	"reklamefix/internal/pbcore"
)

// OutcomeKind is the terminal status of one identifier in a run.
type OutcomeKind string

const (
	OutcomeFetchFailed     OutcomeKind = "fetch_failed"
	OutcomeUnclassified    OutcomeKind = "unclassified"
	OutcomeTransformFailed OutcomeKind = "transform_failed"
	OutcomeUnchanged       OutcomeKind = "unchanged"
	OutcomeWouldUpdate     OutcomeKind = "would_update"
	OutcomeSkippedInactive OutcomeKind = "skipped_inactive"
	OutcomeUpdateFailed    OutcomeKind = "update_failed"
	OutcomeUpdated         OutcomeKind = "updated"
)

// OutcomeKinds lists every kind in display order.
var OutcomeKinds = []OutcomeKind{
	OutcomeUpdated,
	OutcomeWouldUpdate,
	OutcomeUnchanged,
	OutcomeUnclassified,
	OutcomeSkippedInactive,
	OutcomeFetchFailed,
	OutcomeTransformFailed,
	OutcomeUpdateFailed,
}

// Update steps named in Outcome.FailedStep.
const (
	StepGetState     = "get_state"
	StepBeginEdit    = "begin_edit"
	StepWriteContent = "write_content"
	StepPublish      = "publish"
)

// Outcome is what happened to one identifier.
type Outcome struct {
	ID        string
	Category  fixer.Category
	AssetType string
	Kind      OutcomeKind
	// Reason is the report line written for this id, empty when none was.
	Reason  string
	State   doms.State
	Changes []pbcore.Change
	// FailedStep names the update call that failed; the steps before it took effect.
	FailedStep string
	Err        error
}

// Summary aggregates a run. Outcomes are in input order.
type Summary struct {
	DryRun   bool
	Started  time.Time
	Finished time.Time
	Outcomes []Outcome
}

// Total returns the number of identifiers that reached a terminal state.
func (s Summary) Total() int {
	return len(s.Outcomes)
}

// Count returns how many outcomes have kind.
func (s Summary) Count(kind OutcomeKind) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Reported returns how many report lines the run wrote.
func (s Summary) Reported() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Reason != "" {
			n++
		}
	}
	return n
}

// Elapsed returns the wall-clock duration of the run.
func (s Summary) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// InactiveStateError marks an object that was not written because it is not active.
type InactiveStateError struct {
	ID    string
	State doms.State
}

func (e *InactiveStateError) Error() string {
	return fmt.Sprintf("object %s has nonactive state %s", e.ID, e.State)
}
