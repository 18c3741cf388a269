package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reklamefix/internal/fixer"
	"reklamefix/internal/pbcore"
)

// errChangesNeeded is returned by inspect --check when the record is not yet fixed.
var errChangesNeeded = errors.New("record needs changes")

type inspectFlags struct {
	file   string
	output string
	check  bool
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect [ID]",
		Short: "Show how one record would be fixed",
		Long: `Classify one PBCore record and list the changes a run would make.

The record is fetched from DOMS by identifier, or read from a local file with
--file. Nothing is written to DOMS.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = strings.TrimSpace(args[0])
			}
			file := strings.TrimSpace(flags.file)
			if (id == "") == (file == "") {
				return errors.New("pass exactly one of ID or --file")
			}

			var raw []byte
			var err error
			if file != "" {
				id = file
				raw, err = os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read record: %w", err)
				}
			} else {
				raw, err = fetchRecord(cmd, ctx, id)
				if err != nil {
					return err
				}
			}
			return inspectRecord(cmd, id, raw, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the record from a local file instead of DOMS")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the fixed record to this path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Exit with an error when the record needs changes")
	return cmd
}

func fetchRecord(cmd *cobra.Command, ctx *commandContext, id string) ([]byte, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	store, err := ctx.remoteStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return store.FetchContent(cmd.Context(), id)
}

func inspectRecord(cmd *cobra.Command, id string, raw []byte, flags inspectFlags) error {
	rec, err := pbcore.Parse(id, raw)
	if err != nil {
		return err
	}
	assetType, err := rec.AssetType()
	if err != nil {
		return err
	}

	result, err := fixer.NewEngine().ApplyCategory(fixer.CategoryOf(assetType), rec)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reportOut := out
	if flags.output == "-" {
		reportOut = cmd.ErrOrStderr()
	}
	colorize := shouldColorize(reportOut)

	lines := renderSectionHeader("Record", colorize)
	lines = append(lines,
		renderField("Object", id),
		renderField("Asset type", assetType),
		renderField("Category", string(result.Category)),
		renderField("Alt. title", displayValue(rec.AlternativeTitle())),
		renderField("Publishers", formatPublishers(rec.Publishers())),
	)
	switch {
	case result.Category == fixer.CategoryUnclassified:
		lines = append(lines, renderStatusLine("Status", statusInfo, "unsupported asset type; no rules apply", colorize))
	case result.Changed():
		lines = append(lines, renderStatusLine("Status", statusWarn, fmt.Sprintf("%d change(s) needed", len(result.Changes)), colorize))
		lines = append(lines, renderChanges(result.Changes))
	default:
		lines = append(lines, renderStatusLine("Status", statusOK, "already fixed", colorize))
	}
	fmt.Fprintln(reportOut, strings.Join(lines, "\n"))

	if flags.output != "" {
		fixed, err := result.Record.Serialize()
		if err != nil {
			return err
		}
		if reparsed, err := pbcore.Parse(id, fixed); err != nil || !pbcore.Equivalent(reparsed, result.Record) {
			return fmt.Errorf("%w: %s: fixed record does not round-trip", pbcore.ErrSerialize, id)
		}
		if err := writeOutput(out, flags.output, fixed); err != nil {
			return err
		}
	}

	if flags.check && result.Changed() {
		return fmt.Errorf("%w: %s", errChangesNeeded, id)
	}
	return nil
}

func formatPublishers(publishers []pbcore.Publisher) string {
	if len(publishers) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(publishers))
	for _, p := range publishers {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixed record: %w", err)
	}
	return nil
}
