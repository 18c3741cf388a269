package pbcore

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Equivalent reports whether two records hold the same document, ignoring
// insignificant whitespace, comments, namespace prefixes and attribute order.
func Equivalent(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Canonical(a) == Canonical(b)
}

// Canonical renders a whitespace-insensitive form of the document suitable
// for comparison and diagnostics. It is not valid XML.
func Canonical(r *Record) string {
	var b strings.Builder
	writeCanonical(&b, r.root())
	return b.String()
}

func writeCanonical(b *strings.Builder, el *etree.Element) {
	b.WriteString("<{")
	b.WriteString(el.NamespaceURI())
	b.WriteByte('}')
	b.WriteString(el.Tag)

	attrs := make([]string, 0, len(el.Attr))
	for _, attr := range el.Attr {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		attrs = append(attrs, attr.Key+"="+attr.Value)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	b.WriteByte('>')

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			writeCanonical(b, t)
		case *etree.CharData:
			if text := strings.TrimSpace(t.Data); text != "" {
				b.WriteString(text)
			}
		}
	}
	b.WriteString("</>")
}
