package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reklamefix/internal/fixer"
	"reklamefix/internal/logging"
	"reklamefix/internal/pbcore"
)

// Options tunes a run.
type Options struct {
	Workers int
	// DryRun stops after the transform stage; nothing is written.
	DryRun bool
	// ReportUnclassified writes a report line for records with an unknown asset type.
	ReportUnclassified bool
}

// Orchestrator runs the fetch, transform and update stages.
type Orchestrator struct {
	store  RemoteStore
	sink   ReportSink
	engine *fixer.Engine
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// New builds an orchestrator. A nil logger discards output.
func New(store RemoteStore, sink ReportSink, logger *slog.Logger, opts Options) *Orchestrator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Orchestrator{
		store:  store,
		sink:   sink,
		engine: fixer.NewEngine(),
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "batch"),
		now:    time.Now,
	}
}

// fetched carries a record from the fetch stage to the transform stage.
type fetched struct {
	index     int
	id        string
	record    *pbcore.Record
	assetType string
	category  fixer.Category
	err       error
	// canceled marks a fetch cut short by the run context; it has no outcome.
	canceled bool
}

// pending is a changed record waiting for the update stage.
type pending struct {
	index   int
	id      string
	content []byte
	result  fixer.Result
}

// Run processes ids and returns the per-identifier outcomes. Record failures
// are reported and never returned; the error is non-nil only when ctx ended
// the run early, in which case the summary covers the dispatched records.
func (o *Orchestrator) Run(ctx context.Context, ids []string) (Summary, error) {
	summary := Summary{DryRun: o.opts.DryRun, Started: o.now()}
	outcomes := make([]*Outcome, len(ids))
	logger := logging.WithContext(ctx, o.logger)

	logger.Info("batch started",
		slog.Int("objects", len(ids)),
		slog.Int("workers", o.opts.Workers),
		slog.Bool("dry_run", o.opts.DryRun),
	)

	jobs := make([]indexed[string], len(ids))
	for i, id := range ids {
		jobs[i] = indexed[string]{index: i, value: id}
	}
	records := runPool(ctx, o.opts.Workers, jobs, func(ctx context.Context, job indexed[string]) fetched {
		return o.fetch(ctx, job.index, job.value)
	})

	var changed []pending
	for _, rec := range records {
		outcome, next := o.transform(ctx, rec)
		outcomes[rec.index] = outcome
		if next != nil {
			changed = append(changed, *next)
		}
	}

	switch {
	case ctx.Err() != nil:
		for _, p := range changed {
			outcomes[p.index] = nil
		}
	case o.opts.DryRun:
		for _, p := range changed {
			outcomes[p.index].Kind = OutcomeWouldUpdate
		}
	case len(changed) == 0:
		logger.Info("no records need updating")
	default:
		updated := runPool(ctx, o.opts.Workers, changed, func(ctx context.Context, p pending) Outcome {
			return o.update(ctx, p, *outcomes[p.index])
		})
		for i, outcome := range updated {
			if outcome.Kind == "" {
				outcomes[changed[i].index] = nil
				continue
			}
			outcomes[changed[i].index] = &outcome
		}
		// Records skipped by cancellation have no update result.
		if len(updated) < len(changed) {
			for _, p := range changed[len(updated):] {
				outcomes[p.index] = nil
			}
		}
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			summary.Outcomes = append(summary.Outcomes, *outcome)
		}
	}
	summary.Finished = o.now()

	attrs := []any{
		slog.Int("processed", summary.Total()),
		slog.Int("reported", summary.Reported()),
		slog.Duration("elapsed", summary.Elapsed()),
	}
	for _, kind := range OutcomeKinds {
		if n := summary.Count(kind); n > 0 {
			attrs = append(attrs, slog.Int(string(kind), n))
		}
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("batch interrupted", append(attrs, logging.Error(err))...)
		return summary, fmt.Errorf("batch interrupted: %w", err)
	}
	logger.Info("batch finished", attrs...)
	return summary, nil
}

func (o *Orchestrator) objectLogger(ctx context.Context, id string) *slog.Logger {
	return logging.WithContext(logging.WithObjectID(ctx, id), o.logger)
}

func (o *Orchestrator) fetch(ctx context.Context, index int, id string) fetched {
	out := fetched{index: index, id: id}
	logger := o.objectLogger(ctx, id)

	raw, err := o.store.FetchContent(ctx, id)
	if err == nil {
		out.record, err = pbcore.Parse(id, raw)
	}
	if err == nil {
		out.assetType, err = out.record.AssetType()
	}
	if err != nil && interrupted(ctx) {
		out.canceled = true
		logger.Debug("fetch interrupted", logging.Error(err))
		return out
	}
	if err != nil {
		out.err = err
		logger.Error("failed to retrieve object",
			logging.Error(err),
			slog.String(logging.FieldEventType, "fetch_failed"),
			slog.String(logging.FieldErrorHint, "check the identifier and the DOMS connection"),
		)
		o.sink.Report(id, ReasonRetrieveFailed)
		return out
	}
	out.category = fixer.CategoryOf(out.assetType)
	logger.Debug("record classified",
		slog.String("decision_type", "category"),
		slog.String("decision_result", string(out.category)),
		slog.String("asset_type", out.assetType),
	)
	return out
}

// transform runs on the collecting goroutine in input order.
func (o *Orchestrator) transform(ctx context.Context, rec fetched) (*Outcome, *pending) {
	if rec.canceled {
		return nil, nil
	}
	outcome := &Outcome{ID: rec.id, Category: rec.category, AssetType: rec.assetType}
	if rec.err != nil {
		outcome.Kind = OutcomeFetchFailed
		outcome.Reason = ReasonRetrieveFailed
		outcome.Err = rec.err
		return outcome, nil
	}
	logger := o.objectLogger(ctx, rec.id)

	if rec.category == fixer.CategoryUnclassified {
		outcome.Kind = OutcomeUnclassified
		logger.Warn("unsupported asset type; record left untouched",
			slog.String("asset_type", rec.assetType),
			slog.String(logging.FieldEventType, "unclassified"),
		)
		if o.opts.ReportUnclassified {
			outcome.Reason = UnclassifiedReason(rec.assetType)
			o.sink.Report(rec.id, outcome.Reason)
		}
		return outcome, nil
	}

	result, err := o.engine.ApplyCategory(rec.category, rec.record)
	var content []byte
	if err == nil && result.Changed() {
		content, err = result.Record.Serialize()
	}
	if err != nil {
		outcome.Kind = OutcomeTransformFailed
		outcome.Reason = ReasonUpdateFailed
		outcome.Err = err
		logger.Error("failed to apply fixes",
			logging.Error(err),
			slog.String(logging.FieldEventType, "transform_failed"),
			slog.String(logging.FieldErrorHint, "inspect the record with reklamefix inspect"),
		)
		o.sink.Report(rec.id, ReasonUpdateFailed)
		return outcome, nil
	}

	outcome.Changes = result.Changes
	if !result.Changed() {
		outcome.Kind = OutcomeUnchanged
		logger.Debug("record already fixed")
		return outcome, nil
	}
	for _, change := range result.Changes {
		logger.Info("field fixed",
			slog.String("field", change.Field),
			slog.String("before", change.Before),
			slog.String("after", change.After),
			slog.Bool("dry_run", o.opts.DryRun),
		)
	}
	return outcome, &pending{index: rec.index, id: rec.id, content: content, result: result}
}

func (o *Orchestrator) update(ctx context.Context, p pending, outcome Outcome) Outcome {
	logger := o.objectLogger(ctx, p.id)
	fail := func(step string, err error) Outcome {
		outcome.Kind = OutcomeUpdateFailed
		outcome.Reason = ReasonUpdateFailed
		outcome.FailedStep = step
		outcome.Err = err
		attrs := []any{
			logging.Error(err),
			slog.String("step", step),
			slog.String(logging.FieldEventType, "update_failed"),
		}
		if step != StepGetState && step != StepBeginEdit {
			attrs = append(attrs, slog.String(logging.FieldErrorHint, "object may be left in progress; check it in DOMS"))
		}
		logger.Error("failed to update object", attrs...)
		o.sink.Report(p.id, ReasonUpdateFailed)
		return outcome
	}

	// Nothing is mutated before BeginEdit succeeds, so an interrupted record
	// is dropped rather than reported.
	dropped := Outcome{ID: p.id}

	state, err := o.store.GetState(ctx, p.id)
	if err != nil {
		if interrupted(ctx) {
			return dropped
		}
		return fail(StepGetState, err)
	}
	outcome.State = state
	if !state.IsActive() {
		outcome.Kind = OutcomeSkippedInactive
		outcome.Reason = NonactiveReason(state)
		outcome.Err = &InactiveStateError{ID: p.id, State: state}
		logger.Error("object is not published; not updating",
			slog.String("state", state.String()),
			slog.String(logging.FieldEventType, "skipped_inactive"),
		)
		o.sink.Report(p.id, outcome.Reason)
		return outcome
	}

	if err := o.store.BeginEdit(ctx, p.id); err != nil {
		if interrupted(ctx) {
			return dropped
		}
		return fail(StepBeginEdit, err)
	}
	// The object is checked out; finish the edit even if the run is interrupted.
	commitCtx := context.WithoutCancel(ctx)
	if err := o.store.WriteContent(commitCtx, p.id, p.content); err != nil {
		return fail(StepWriteContent, err)
	}
	if err := o.store.Publish(commitCtx, p.id); err != nil {
		return fail(StepPublish, err)
	}

	outcome.Kind = OutcomeUpdated
	logger.Info("object updated", slog.Int("changes", len(p.result.Changes)))
	return outcome
}

func interrupted(ctx context.Context) bool {
	return ctx.Err() != nil
}

// IsInactive reports whether err marks an object skipped for its state.
func IsInactive(err error) bool {
	var inactive *InactiveStateError
	return errors.As(err, &inactive)
}
