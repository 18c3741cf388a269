package main

import (
	"strings"
	"testing"

	"reklamefix/internal/batch"
)

func sampleSummary() batch.Summary {
	return batch.Summary{Outcomes: []batch.Outcome{
		{ID: "uuid:1", Kind: batch.OutcomeUpdated},
		{ID: "uuid:2", Kind: batch.OutcomeFetchFailed, Reason: batch.ReasonRetrieveFailed},
		{ID: "uuid:3", Kind: batch.OutcomeSkippedInactive, Reason: "Object has nonactive state: I"},
	}}
}

func TestRenderRunSummaryColorsOutcomeRows(t *testing.T) {
	out := renderRunSummary("run-1", sampleSummary(), 3, true)

	requireContains(t, out, ansiGreen+"updated"+ansiReset)
	requireContains(t, out, ansiRed+"fetch failed"+ansiReset)
	requireContains(t, out, ansiYellow+"skipped inactive"+ansiReset)
	requireContains(t, out, "2 object(s) reported on stdout")
}

func TestRenderRunSummaryPlain(t *testing.T) {
	out := renderRunSummary("run-1", sampleSummary(), 3, false)

	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences, got %q", out)
	}
	requireContains(t, out, "updated")
	requireContains(t, out, "3 processed of 3 listed")
}

func TestOutcomeStatus(t *testing.T) {
	cases := map[batch.OutcomeKind]statusKind{
		batch.OutcomeUpdated:         statusOK,
		batch.OutcomeUnchanged:       statusOK,
		batch.OutcomeWouldUpdate:     statusInfo,
		batch.OutcomeUnclassified:    statusWarn,
		batch.OutcomeSkippedInactive: statusWarn,
		batch.OutcomeFetchFailed:     statusError,
		batch.OutcomeUpdateFailed:    statusError,
		batch.OutcomeTransformFailed: statusError,
	}
	for kind, want := range cases {
		if got := outcomeStatus(kind); got != want {
			t.Fatalf("outcomeStatus(%s) = %d, want %d", kind, got, want)
		}
	}
}
