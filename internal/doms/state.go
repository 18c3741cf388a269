package doms

import "strings"

// State is the lifecycle marker DOMS keeps on every object.
type State string

const (
	StateActive   State = "A"
	StateInactive State = "I"
	StateDeleted  State = "D"
)

// IsActive reports whether the object is published and may be edited.
func (s State) IsActive() bool {
	return s == StateActive
}

func (s State) String() string {
	return string(s)
}

func parseState(raw string) State {
	return State(strings.TrimSpace(raw))
}
