package doms

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrRemote marks every failure of a DOMS call: transport, HTTP status,
// SOAP fault or an unreadable response.
var ErrRemote = errors.New("doms call failed")

// Fault is a SOAP 1.1 fault returned by the central webservice.
type Fault struct {
	Code   string      `xml:"faultcode"`
	String string      `xml:"faultstring"`
	Detail faultDetail `xml:"detail"`
}

type faultDetail struct {
	Inner []byte `xml:",innerxml"`
}

func (f *Fault) Error() string {
	msg := strings.TrimSpace(f.String)
	if msg == "" {
		msg = "unspecified fault"
	}
	if exc := f.Exception(); exc != "" {
		return fmt.Sprintf("soap fault %s (%s): %s", strings.TrimSpace(f.Code), exc, msg)
	}
	return fmt.Sprintf("soap fault %s: %s", strings.TrimSpace(f.Code), msg)
}

// Exception returns the local name of the first element in the fault
// detail, e.g. "InvalidResourceException", or "" when the detail is empty.
func (f *Fault) Exception() string {
	if f == nil || len(f.Detail.Inner) == 0 {
		return ""
	}
	dec := xml.NewDecoder(bytes.NewReader(f.Detail.Inner))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}

func remoteError(op, id string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrRemote, op, id, err)
}
