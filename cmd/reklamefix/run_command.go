package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reklamefix/internal/batch"
	"reklamefix/internal/config"
	"reklamefix/internal/idlist"
	"reklamefix/internal/journal"
	"reklamefix/internal/logging"
	"reklamefix/internal/runlock"
)

type runFlags struct {
	idsFile            string
	dryRun             bool
	workers            int
	noJournal          bool
	reportUnclassified bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fix every object in the identifier list",
		Long: `Fetch the PBCore datastream of every listed object, fix cinema and TV 2
commercials, and write changed records back to DOMS.

Objects that could not be fetched or updated are written to stdout as
"<id>\t<reason>" lines. The command exits 0 even when some objects failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return executeRun(cmd, ctx, cfg, logger, resolveRunFlags(cmd, cfg, flags))
		},
	}

	cmd.Flags().StringVar(&flags.idsFile, "ids", "", "Identifier list, one per line (\"-\" reads stdin); overrides input.ids_file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Fetch and fix in memory only; write nothing to DOMS")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent DOMS workers (1-32); overrides run.workers")
	cmd.Flags().BoolVar(&flags.noJournal, "no-journal", false, "Do not record this run in the journal")
	cmd.Flags().BoolVar(&flags.reportUnclassified, "report-unclassified", false, "Report objects with an unsupported asset type")
	return cmd
}

// resolveRunFlags merges command line flags over the configuration.
func resolveRunFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) runFlags {
	resolved := runFlags{
		idsFile:            cfg.Input.IDsFile,
		dryRun:             cfg.Run.DryRun,
		workers:            cfg.Run.Workers,
		noJournal:          !cfg.Journal.Enabled,
		reportUnclassified: cfg.Run.ReportUnclassified,
	}
	if f := cmd.Flags(); f != nil {
		if f.Changed("ids") {
			resolved.idsFile = strings.TrimSpace(flags.idsFile)
		}
		if f.Changed("dry-run") {
			resolved.dryRun = flags.dryRun
		}
		if f.Changed("workers") {
			resolved.workers = config.ClampWorkers(flags.workers)
		}
		if f.Changed("no-journal") && flags.noJournal {
			resolved.noJournal = true
		}
		if f.Changed("report-unclassified") {
			resolved.reportUnclassified = flags.reportUnclassified
		}
	}
	return resolved
}

func executeRun(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, logger *slog.Logger, flags runFlags) error {
	if flags.idsFile == "" {
		return errors.New("no identifier list: pass --ids or set input.ids_file")
	}
	store, err := ctx.remoteStore(cfg, logger)
	if err != nil {
		return err
	}

	var list idlist.List
	if flags.idsFile == idlist.Stdin {
		list, err = idlist.Read(cmd.InOrStdin())
	} else {
		list, err = idlist.Load(flags.idsFile)
	}
	if err != nil {
		return err
	}
	if list.Duplicates > 0 {
		logger.Warn("identifier list has duplicates; each object is processed once",
			slog.Int("duplicates", list.Duplicates),
			slog.String(logging.FieldEventType, "duplicate_ids"),
		)
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	logger.Debug("run lock acquired", slog.String("lock", lock.Path()))
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	runCtx := logging.WithRunID(cmd.Context(), runID)

	var history *journal.Store
	if !flags.noJournal {
		history, err = journal.Open(cfg.JournalPath())
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer history.Close()
		if err := history.BeginRun(runCtx, journal.Run{
			ID:      runID,
			DryRun:  flags.dryRun,
			Workers: flags.workers,
			IDsFile: flags.idsFile,
		}); err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
	}

	sink := batch.NewLineSink(cmd.OutOrStdout())
	orchestrator := batch.New(store, sink, logger, batch.Options{
		Workers:            flags.workers,
		DryRun:             flags.dryRun,
		ReportUnclassified: flags.reportUnclassified,
	})
	summary, runErr := orchestrator.Run(runCtx, list.IDs)

	if history != nil {
		status := journal.RunCompleted
		switch {
		case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
			status = journal.RunInterrupted
		case runErr != nil:
			status = journal.RunFailed
		}
		if err := history.FinishRun(context.WithoutCancel(runCtx), runID, summary, status, runErr); err != nil {
			logging.WithContext(runCtx, logger).Error("failed to journal run outcomes",
				logging.Error(err),
				slog.String(logging.FieldErrorHint, "history for this run is incomplete"),
			)
		}
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, renderRunSummary(runID, summary, len(list.IDs), shouldColorize(errOut)))

	if err := sink.Err(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return runErr
}
