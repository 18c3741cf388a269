package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"reklamefix/internal/batch"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// labelColumn is wide enough for "Identifier list:" so check output lines up.
const labelColumn = 17

var statusStyles = map[statusKind]struct {
	tag   string
	color string
}{
	statusInfo:  {tag: "INFO", color: ansiBlue},
	statusOK:    {tag: "OK", color: ansiGreen},
	statusWarn:  {tag: "WARN", color: ansiYellow},
	statusError: {tag: "ERROR", color: ansiRed},
}

// paint wraps text in the colour of kind when colorize is set.
func paint(kind statusKind, text string, colorize bool) string {
	if !colorize {
		return text
	}
	return statusStyles[kind].color + text + ansiReset
}

func labelled(label, value string) string {
	return "  " + padRight(label+":", labelColumn) + " " + value
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// renderStatusLine renders "  Label:  [TAG] message".
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusStyles[kind].tag + "]"
	if message != "" {
		status += " " + message
	}
	return paint(kind, labelled(label, status), colorize)
}

func renderField(label, value string) string {
	return labelled(label, value)
}

// outcomeStatus maps an outcome kind onto the colour operators see in the
// summary table.
func outcomeStatus(kind batch.OutcomeKind) statusKind {
	switch kind {
	case batch.OutcomeUpdated, batch.OutcomeUnchanged:
		return statusOK
	case batch.OutcomeWouldUpdate:
		return statusInfo
	case batch.OutcomeUnclassified, batch.OutcomeSkippedInactive:
		return statusWarn
	default:
		return statusError
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	return []string{
		paint(statusInfo, heading, colorize),
		paint(statusInfo, strings.Repeat("-", len(heading)), colorize),
	}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
