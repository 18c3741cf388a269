package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"reklamefix/internal/batch"
	"reklamefix/internal/pbcore"
)

func renderRunSummary(runID string, summary batch.Summary, requested int, colorize bool) string {
	title := "Run summary"
	if summary.DryRun {
		title = "Dry run summary"
	}
	lines := renderSectionHeader(title, colorize)
	lines = append(lines,
		renderField("Run", runID),
		renderField("Objects", fmt.Sprintf("%d processed of %d listed", summary.Total(), requested)),
		renderField("Elapsed", summary.Elapsed().Round(time.Millisecond).String()),
	)
	reported := summary.Reported()
	switch {
	case summary.Total() < requested:
		lines = append(lines, renderStatusLine("Result", statusWarn, "interrupted before every object was processed", colorize))
	case reported > 0:
		lines = append(lines, renderStatusLine("Result", statusWarn, fmt.Sprintf("%d object(s) reported on stdout", reported), colorize))
	default:
		lines = append(lines, renderStatusLine("Result", statusOK, "nothing to report", colorize))
	}

	rows := make([][]string, 0, len(batch.OutcomeKinds))
	for _, kind := range batch.OutcomeKinds {
		if n := summary.Count(kind); n > 0 {
			rows = append(rows, []string{paint(outcomeStatus(kind), outcomeLabel(kind), colorize), strconv.Itoa(n)})
		}
	}
	if len(rows) > 0 {
		lines = append(lines, tableLayout{
			headers: []string{"Outcome", "Objects"},
			aligns:  []columnAlignment{alignLeft, alignRight},
			footer:  []string{"Total", strconv.Itoa(summary.Total())},
		}.render(rows))
	}

	if summary.DryRun {
		if changes := renderPlannedChanges(summary); changes != "" {
			lines = append(lines, changes)
		}
	}
	return strings.Join(lines, "\n")
}

func renderPlannedChanges(summary batch.Summary) string {
	var rows [][]string
	for _, outcome := range summary.Outcomes {
		if outcome.Kind != batch.OutcomeWouldUpdate {
			continue
		}
		for _, change := range outcome.Changes {
			rows = append(rows, []string{outcome.ID, change.Field, displayValue(change.Before), displayValue(change.After)})
		}
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]string{"Object", "Field", "Before", "After"}, rows, nil)
}

func renderChanges(changes []pbcore.Change) string {
	rows := make([][]string, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, []string{change.Field, displayValue(change.Before), displayValue(change.After)})
	}
	return renderTable([]string{"Field", "Before", "After"}, rows, nil)
}

func outcomeLabel(kind batch.OutcomeKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

func displayValue(value string) string {
	if value == "" {
		return "(empty)"
	}
	return value
}
