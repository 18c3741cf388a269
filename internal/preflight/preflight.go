package preflight

import (
	"context"

	"reklamefix/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	// Identifier list (when configured as a file)
	if cfg.Input.IDsFile != "" && cfg.Input.IDsFile != "-" {
		results = append(results, CheckReadableFile("Identifier list", cfg.Input.IDsFile))
	}

	results = append(results, CheckDOMS(ctx, cfg.DOMS.Endpoint, cfg.DOMS.Username, cfg.DOMS.Password, cfg.Timeout()))

	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
