package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reklamefix/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, ctx, func(store *journal.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "no runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						formatHistoryTime(run.StartedAt),
						string(run.Status),
						yesNo(run.DryRun),
						strconv.Itoa(run.Total),
						strconv.Itoa(run.Updated),
						strconv.Itoa(run.Reported),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Run", "Started", "Status", "Dry run", "Objects", "Updated", "Reported"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryObjectCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the outcome of every object in one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, ctx, func(store *journal.Store) error {
				run, err := store.GetRun(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				entries, err := store.Entries(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := renderSectionHeader("Run", colorize)
				lines = append(lines,
					renderField("ID", run.ID),
					renderField("Started", formatHistoryTime(run.StartedAt)),
					renderField("Finished", formatHistoryTime(run.FinishedAt)),
					renderField("Status", string(run.Status)),
					renderField("Dry run", yesNo(run.DryRun)),
					renderField("Workers", strconv.Itoa(run.Workers)),
					renderField("IDs file", run.IDsFile),
				)
				if run.Error != "" {
					lines = append(lines, renderStatusLine("Error", statusError, run.Error, colorize))
				}
				if len(entries) > 0 {
					lines = append(lines, renderEntryTable(entries, false))
				}
				fmt.Fprintln(out, strings.Join(lines, "\n"))
				return nil
			})
		},
	}
}

func newHistoryObjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "object ID",
		Short: "Show every recorded outcome of one object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, ctx, func(store *journal.Store) error {
				id := strings.TrimSpace(args[0])
				entries, err := store.ObjectHistory(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "no outcomes recorded for %s\n", id)
					return nil
				}
				fmt.Fprintln(out, renderEntryTable(entries, true))
				return nil
			})
		},
	}
}

// withJournal opens the journal read side. A journal that was never created
// is reported as empty rather than created.
func withJournal(cmd *cobra.Command, ctx *commandContext, fn func(*journal.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	path := cfg.JournalPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}
		return fmt.Errorf("stat journal: %w", err)
	}
	store, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func renderEntryTable(entries []journal.Entry, byRun bool) string {
	headers := []string{"Object", "Category", "Outcome", "Detail"}
	if byRun {
		headers[0] = "Run"
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		first := entry.ObjectID
		if byRun {
			first = shortID(entry.RunID)
		}
		rows = append(rows, []string{first, entry.Category, outcomeLabel(entry.Kind), entryDetail(entry)})
	}
	return renderTable(headers, rows, nil)
}

func entryDetail(entry journal.Entry) string {
	switch {
	case entry.Reason != "" && entry.FailedStep != "":
		return entry.Reason + " (" + entry.FailedStep + ")"
	case entry.Reason != "":
		return entry.Reason
	case len(entry.Changes) > 0:
		fields := make([]string, 0, len(entry.Changes))
		for _, change := range entry.Changes {
			fields = append(fields, change.Field)
		}
		return strings.Join(fields, ", ")
	default:
		return entry.Error
	}
}

func formatHistoryTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(historyTimeLayout)
}
