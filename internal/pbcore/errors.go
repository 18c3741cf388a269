package pbcore

import "errors"

var (
	// ErrParse marks content that is not well-formed or is not a PBCore description document.
	ErrParse = errors.New("pbcore parse error")
	// ErrFieldMissing marks a document lacking a field an operation needs.
	ErrFieldMissing = errors.New("pbcore field missing")
	// ErrSerialize marks a failure to render a document back to bytes.
	ErrSerialize = errors.New("pbcore serialization error")
)
