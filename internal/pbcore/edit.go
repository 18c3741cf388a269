package pbcore

import (
	"strings"

	"github.com/beevik/etree"
)

// Field names used in change logs.
const (
	FieldAlternativeTitle = "alternative_title"
	FieldDescription      = "description"
	FieldPublisher        = "publisher"
)

// Change records one field modification made by an edit.
type Change struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Edit is the outcome of an edit operation. Record is the resulting snapshot;
// it is the receiver itself when Changes is empty.
type Edit struct {
	Record  *Record
	Changes []Change
}

// Changed reports whether the edit modified the document.
func (e Edit) Changed() bool {
	return len(e.Changes) > 0
}

// Then chains a further edit onto the result, accumulating both change logs.
func (e Edit) Then(next func(*Record) (Edit, error)) (Edit, error) {
	out, err := next(e.Record)
	if err != nil {
		return e, err
	}
	if len(e.Changes) == 0 {
		return out, nil
	}
	out.Changes = append(append([]Change(nil), e.Changes...), out.Changes...)
	return out, nil
}

func unchanged(r *Record) Edit {
	return Edit{Record: r}
}

// MoveAlternativeTitle moves the alternative title text into the description
// field and clears the alternative title. Only a missing or empty alternative
// title leaves the record unchanged; whitespace is moved like any other text.
func (r *Record) MoveAlternativeTitle() (Edit, error) {
	title := r.AlternativeTitle()
	if title == "" {
		return unchanged(r), nil
	}

	next := r.clone()
	descEl := description(next.root())
	if descEl == nil {
		return unchanged(r), r.missing(tagDescriptionGroup + "/" + tagDescription)
	}
	before := descEl.Text()
	descEl.SetText(title)
	alternativeTitle(next.root()).SetText("")

	return Edit{
		Record: next,
		Changes: []Change{
			{Field: FieldAlternativeTitle, Before: title, After: ""},
			{Field: FieldDescription, Before: before, After: title},
		},
	}, nil
}

// InsertBroadcastPublishers inserts one pbcorePublisher entry per publisher,
// in order, directly before the first pbcoreInstantiation element. The first
// publisher's name acts as the marker of an earlier insertion: if any existing
// entry carries it, the record is returned unchanged.
func (r *Record) InsertBroadcastPublishers(publishers ...Publisher) (Edit, error) {
	if len(publishers) == 0 {
		return unchanged(r), nil
	}
	marker := publishers[0].Name
	for _, existing := range r.Publishers() {
		if existing.Name == marker {
			return unchanged(r), nil
		}
	}

	next := r.clone()
	root := next.root()
	nodes := make([]etree.Token, 0, len(publishers)*2)
	changes := make([]Change, 0, len(publishers))
	indent := indentBefore(root, child(root, tagInstantiation))
	for _, p := range publishers {
		nodes = append(nodes, next.publisherElement(p))
		if indent != "" {
			nodes = append(nodes, etree.NewCharData(indent))
		}
		changes = append(changes, Change{Field: FieldPublisher, After: p.String()})
	}

	if inst := child(root, tagInstantiation); inst != nil {
		at := inst.Index()
		for i, node := range nodes {
			root.InsertChildAt(at+i, node)
		}
	} else {
		for _, node := range nodes {
			root.AddChild(node)
		}
	}
	return Edit{Record: next, Changes: changes}, nil
}

func (r *Record) publisherElement(p Publisher) *etree.Element {
	group := etree.NewElement(r.qualified(tagPublisherGroup))
	group.CreateElement(r.qualified(tagPublisher)).SetText(p.Name)
	group.CreateElement(r.qualified(tagPublisherRole)).SetText(p.Role)
	return group
}

// indentBefore returns the whitespace run preceding el so inserted siblings
// line up with it.
func indentBefore(parent, el *etree.Element) string {
	if el == nil {
		return ""
	}
	idx := el.Index()
	if idx <= 0 {
		return ""
	}
	cd, ok := parent.Child[idx-1].(*etree.CharData)
	if !ok || strings.TrimSpace(cd.Data) != "" {
		return ""
	}
	return cd.Data
}
