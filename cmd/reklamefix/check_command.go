package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reklamefix/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify DOMS connectivity and local paths before a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Preflight", colorize)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
