package pbcore

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespace is the PBCore namespace every document element must belong to.
const Namespace = "http://www.pbcore.org/PBCore/PBCoreNamespace.html"

const (
	tagDocument          = "PBCoreDescriptionDocument"
	tagAssetType         = "pbcoreAssetType"
	tagTitleGroup        = "pbcoreTitle"
	tagTitle             = "title"
	tagTitleType         = "titleType"
	tagDescriptionGroup  = "pbcoreDescription"
	tagDescription       = "description"
	tagPublisherGroup    = "pbcorePublisher"
	tagPublisher         = "publisher"
	tagPublisherRole     = "publisherRole"
	tagInstantiation     = "pbcoreInstantiation"
	alternativeTitleType = "alternative"
)

// Publisher is one publisher/publisher-role pair of a pbcorePublisher entry.
type Publisher struct {
	Name string
	Role string
}

func (p Publisher) String() string {
	return p.Name + "/" + p.Role
}

// Record is an immutable snapshot of one object's PBCore document.
type Record struct {
	id  string
	doc *etree.Document
}

// Parse builds a record from raw datastream content.
func Parse(id string, raw []byte) (*Record, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, id, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %s: document has no root element", ErrParse, id)
	}
	if root.Tag != tagDocument || root.NamespaceURI() != Namespace {
		return nil, fmt.Errorf("%w: %s: unexpected root element {%s}%s", ErrParse, id, root.NamespaceURI(), root.Tag)
	}
	return &Record{id: id, doc: doc}, nil
}

// ID returns the object identifier the record was fetched for.
func (r *Record) ID() string {
	return r.id
}

// AssetType returns the trimmed pbcoreAssetType text.
func (r *Record) AssetType() (string, error) {
	el := child(r.root(), tagAssetType)
	if el == nil {
		return "", r.missing(tagAssetType)
	}
	return strings.TrimSpace(el.Text()), nil
}

// AlternativeTitle returns the title of the alternative pbcoreTitle entry, or
// an empty string when the document has none.
func (r *Record) AlternativeTitle() string {
	el := alternativeTitle(r.root())
	if el == nil {
		return ""
	}
	return el.Text()
}

// Description returns the first pbcoreDescription/description text.
func (r *Record) Description() (string, error) {
	el := description(r.root())
	if el == nil {
		return "", r.missing(tagDescriptionGroup + "/" + tagDescription)
	}
	return el.Text(), nil
}

// Publishers lists the pbcorePublisher entries in document order.
func (r *Record) Publishers() []Publisher {
	var out []Publisher
	for _, group := range children(r.root(), tagPublisherGroup) {
		out = append(out, Publisher{
			Name: strings.TrimSpace(textOf(child(group, tagPublisher))),
			Role: strings.TrimSpace(textOf(child(group, tagPublisherRole))),
		})
	}
	return out
}

// Serialize renders the document.
func (r *Record) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := r.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSerialize, r.id, err)
	}
	return buf.Bytes(), nil
}

func (r *Record) root() *etree.Element {
	return r.doc.Root()
}

func (r *Record) clone() *Record {
	return &Record{id: r.id, doc: r.doc.Copy()}
}

func (r *Record) missing(field string) error {
	return fmt.Errorf("%w: %s: %s", ErrFieldMissing, r.id, field)
}

// qualified prefixes tag with the root's namespace prefix so new elements
// resolve to the PBCore namespace.
func (r *Record) qualified(tag string) string {
	if space := r.root().Space; space != "" {
		return space + ":" + tag
	}
	return tag
}

func alternativeTitle(root *etree.Element) *etree.Element {
	for _, group := range children(root, tagTitleGroup) {
		titleType := child(group, tagTitleType)
		if titleType == nil || strings.TrimSpace(titleType.Text()) != alternativeTitleType {
			continue
		}
		if title := child(group, tagTitle); title != nil {
			return title
		}
	}
	return nil
}

func description(root *etree.Element) *etree.Element {
	group := child(root, tagDescriptionGroup)
	if group == nil {
		return nil
	}
	return child(group, tagDescription)
}

func child(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, el := range parent.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == Namespace {
			return el
		}
	}
	return nil
}

func children(parent *etree.Element, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, el := range parent.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == Namespace {
			out = append(out, el)
		}
	}
	return out
}

func textOf(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}
