package batch

import (
	"io"
	"strings"
	"sync"

	"reklamefix/internal/doms"
)

// Report reasons written next to an object identifier.
const (
	ReasonRetrieveFailed = "Failed to retrieve object."
	ReasonUpdateFailed   = "Failed to update object."
)

// NonactiveReason reports an object skipped because it is not published.
func NonactiveReason(state doms.State) string {
	return "Object has nonactive state: " + string(state)
}

// UnclassifiedReason reports an object whose asset type has no rule set.
func UnclassifiedReason(assetType string) string {
	return "Unsupported asset type: " + assetType
}

// ReportSink receives one line per object that needs operator attention.
// Implementations must be safe for concurrent use.
type ReportSink interface {
	Report(id, reason string)
}

// LineSink writes "<id>\t<reason>\n" lines, one whole line per write.
type LineSink struct {
	mu    sync.Mutex
	w     io.Writer
	lines int
	err   error
}

// NewLineSink wraps w, typically os.Stdout.
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

// Report writes one line. After the first write error further lines are dropped;
// the error is available from Err.
func (s *LineSink) Report(id, reason string) {
	line := sanitize(id) + "\t" + sanitize(reason) + "\n"
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, line); err != nil {
		s.err = err
		return
	}
	s.lines++
}

// Lines returns how many lines were written.
func (s *LineSink) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Err returns the first write error.
func (s *LineSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func sanitize(s string) string {
	return lineBreaks.Replace(s)
}
