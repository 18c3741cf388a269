package pbcore_test

import (
	"errors"
	"strings"
	"testing"

	"reklamefix/internal/pbcore"
	"reklamefix/internal/testsupport"
)

var tv2Publishers = []pbcore.Publisher{
	{Name: "tv2d", Role: "channel_name"},
	{Name: "TV 2", Role: "kanalnavn"},
}

func mustParse(t *testing.T, id, doc string) *pbcore.Record {
	t.Helper()
	rec, err := pbcore.Parse(id, []byte(doc))
	if err != nil {
		t.Fatalf("Parse(%s) returned error: %v", id, err)
	}
	return rec
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"truncated", `<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html"><pbcoreTitle>`},
		{"wrong root", `<movie><title>x</title></movie>`},
		{"wrong namespace", `<PBCoreDescriptionDocument xmlns="urn:example"><pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType></PBCoreDescriptionDocument>`},
		{"no namespace", `<PBCoreDescriptionDocument><pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType></PBCoreDescriptionDocument>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pbcore.Parse("uuid:bad", []byte(tc.doc))
			if !errors.Is(err, pbcore.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := mustParse(t, "uuid:1", testsupport.CinemaDocument)

	if rec.ID() != "uuid:1" {
		t.Fatalf("unexpected id %q", rec.ID())
	}
	assetType, err := rec.AssetType()
	if err != nil {
		t.Fatalf("AssetType returned error: %v", err)
	}
	if assetType != "Biografreklamefilm" {
		t.Fatalf("unexpected asset type %q", assetType)
	}
	if got := rec.AlternativeTitle(); got != "Sommerreklame 2015" {
		t.Fatalf("unexpected alternative title %q", got)
	}
	desc, err := rec.Description()
	if err != nil {
		t.Fatalf("Description returned error: %v", err)
	}
	if desc != "" {
		t.Fatalf("expected empty description, got %q", desc)
	}
	if pubs := rec.Publishers(); len(pubs) != 0 {
		t.Fatalf("expected no publishers, got %v", pubs)
	}
}

func TestAssetTypeMissing(t *testing.T) {
	doc := strings.Replace(testsupport.CinemaDocument, "<pbcoreAssetType>Biografreklamefilm</pbcoreAssetType>", "", 1)
	rec := mustParse(t, "uuid:1", doc)
	if _, err := rec.AssetType(); !errors.Is(err, pbcore.ErrFieldMissing) {
		t.Fatalf("expected ErrFieldMissing, got %v", err)
	}
}

func TestMoveAlternativeTitle(t *testing.T) {
	rec := mustParse(t, "uuid:1", testsupport.CinemaDocument)

	edit, err := rec.MoveAlternativeTitle()
	if err != nil {
		t.Fatalf("MoveAlternativeTitle returned error: %v", err)
	}
	if !edit.Changed() {
		t.Fatal("expected record to change")
	}
	if got := edit.Record.AlternativeTitle(); got != "" {
		t.Fatalf("expected alternative title cleared, got %q", got)
	}
	desc, _ := edit.Record.Description()
	if desc != "Sommerreklame 2015" {
		t.Fatalf("unexpected description %q", desc)
	}
	if !pbcore.Equivalent(edit.Record, mustParse(t, "uuid:1", testsupport.UpdatedCinemaDocument)) {
		t.Fatalf("unexpected document:\n%s", pbcore.Canonical(edit.Record))
	}
	want := []pbcore.Change{
		{Field: pbcore.FieldAlternativeTitle, Before: "Sommerreklame 2015", After: ""},
		{Field: pbcore.FieldDescription, Before: "", After: "Sommerreklame 2015"},
	}
	if len(edit.Changes) != len(want) {
		t.Fatalf("unexpected changes %#v", edit.Changes)
	}
	for i := range want {
		if edit.Changes[i] != want[i] {
			t.Fatalf("change %d: got %#v want %#v", i, edit.Changes[i], want[i])
		}
	}

	if got := rec.AlternativeTitle(); got != "Sommerreklame 2015" {
		t.Fatalf("expected source snapshot untouched, got alternative title %q", got)
	}
}

func TestMoveAlternativeTitleIsIdempotent(t *testing.T) {
	for _, doc := range []string{testsupport.CinemaDocument, testsupport.UpdatedCinemaDocument, testsupport.Tv2Document} {
		rec := mustParse(t, "uuid:1", doc)
		first, err := rec.MoveAlternativeTitle()
		if err != nil {
			t.Fatalf("first move: %v", err)
		}
		second, err := first.Record.MoveAlternativeTitle()
		if err != nil {
			t.Fatalf("second move: %v", err)
		}
		if second.Changed() {
			t.Fatalf("second move reported changes: %#v", second.Changes)
		}
		if second.Record != first.Record {
			t.Fatal("expected unchanged edit to return the same snapshot")
		}
	}
}

func TestMoveAlternativeTitleEmptyIsNoop(t *testing.T) {
	doc := strings.Replace(testsupport.CinemaDocument, "<title>Sommerreklame 2015</title>", "<title></title>", 1)
	rec := mustParse(t, "uuid:1", doc)
	edit, err := rec.MoveAlternativeTitle()
	if err != nil {
		t.Fatalf("MoveAlternativeTitle returned error: %v", err)
	}
	if edit.Changed() {
		t.Fatalf("expected empty title to be ignored, got %#v", edit.Changes)
	}
}

func TestMoveAlternativeTitleMovesWhitespace(t *testing.T) {
	doc := strings.Replace(testsupport.CinemaDocument, "<title>Sommerreklame 2015</title>", "<title>   </title>", 1)
	rec := mustParse(t, "uuid:1", doc)
	edit, err := rec.MoveAlternativeTitle()
	if err != nil {
		t.Fatalf("MoveAlternativeTitle returned error: %v", err)
	}
	if !edit.Changed() {
		t.Fatal("expected whitespace title to be moved")
	}
	if got := edit.Record.AlternativeTitle(); got != "" {
		t.Fatalf("expected alternative title cleared, got %q", got)
	}
	if got, err := edit.Record.Description(); err != nil || got != "   " {
		t.Fatalf("Description = %q, %v; want %q", got, err, "   ")
	}
	again, err := edit.Record.MoveAlternativeTitle()
	if err != nil || again.Changed() {
		t.Fatalf("second move changed the record: %#v, %v", again.Changes, err)
	}
}

func TestMoveAlternativeTitleRequiresDescription(t *testing.T) {
	doc := strings.Replace(testsupport.CinemaDocument, "<description></description>", "", 1)
	rec := mustParse(t, "uuid:1", doc)
	edit, err := rec.MoveAlternativeTitle()
	if !errors.Is(err, pbcore.ErrFieldMissing) {
		t.Fatalf("expected ErrFieldMissing, got %v", err)
	}
	if edit.Changed() || edit.Record != rec {
		t.Fatal("expected failed edit to leave the record untouched")
	}
}

func TestInsertBroadcastPublishers(t *testing.T) {
	rec := mustParse(t, "uuid:2", testsupport.Tv2Document)

	edit, err := rec.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("InsertBroadcastPublishers returned error: %v", err)
	}
	if !edit.Changed() {
		t.Fatal("expected record to change")
	}
	if !pbcore.Equivalent(edit.Record, mustParse(t, "uuid:2", testsupport.UpdatedTv2Document)) {
		t.Fatalf("unexpected document:\n%s", pbcore.Canonical(edit.Record))
	}
	pubs := edit.Record.Publishers()
	if len(pubs) != 2 || pubs[0] != tv2Publishers[0] || pubs[1] != tv2Publishers[1] {
		t.Fatalf("unexpected publishers %v", pubs)
	}
	if len(rec.Publishers()) != 0 {
		t.Fatal("expected source snapshot untouched")
	}

	again, err := edit.Record.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if again.Changed() {
		t.Fatalf("second insert reported changes: %#v", again.Changes)
	}
}

func TestInsertBroadcastPublishersAlreadyPresent(t *testing.T) {
	rec := mustParse(t, "uuid:2", testsupport.UpdatedTv2Document)
	edit, err := rec.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("InsertBroadcastPublishers returned error: %v", err)
	}
	if edit.Changed() {
		t.Fatalf("expected no changes, got %#v", edit.Changes)
	}
}

func TestInsertBroadcastPublishersPrefixedDocument(t *testing.T) {
	rec := mustParse(t, "uuid:3", testsupport.PrefixedTv2Document)

	edit, err := rec.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("InsertBroadcastPublishers returned error: %v", err)
	}
	pubs := edit.Record.Publishers()
	if len(pubs) != 3 || pubs[0].Name != "Lego Danmark" || pubs[1].Name != "tv2d" || pubs[2].Name != "TV 2" {
		t.Fatalf("unexpected publishers %v", pubs)
	}

	raw, err := edit.Record.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "<pb:publisher>tv2d</pb:publisher>") {
		t.Fatalf("expected prefixed publisher element, got:\n%s", out)
	}
	marker := strings.Index(out, "tv2d")
	if marker < strings.Index(out, "Lego Danmark") {
		t.Fatalf("expected insertion after existing publisher:\n%s", out)
	}
	if marker > strings.Index(out, "<pb:pbcoreInstantiation>") {
		t.Fatalf("expected insertion before first instantiation:\n%s", out)
	}
	if strings.Count(out, "<pb:pbcoreInstantiation>") != 2 {
		t.Fatalf("instantiations altered:\n%s", out)
	}

	reparsed := mustParse(t, "uuid:3", out)
	again, err := reparsed.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if again.Changed() {
		t.Fatal("expected marker in a later publisher entry to stop re-insertion")
	}
}

func TestInsertBroadcastPublishersWithoutInstantiation(t *testing.T) {
	doc := `<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html"><pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType></PBCoreDescriptionDocument>`
	rec := mustParse(t, "uuid:4", doc)
	edit, err := rec.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("InsertBroadcastPublishers returned error: %v", err)
	}
	raw, err := edit.Record.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	want := `<pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType>` +
		`<pbcorePublisher><publisher>tv2d</publisher><publisherRole>channel_name</publisherRole></pbcorePublisher>` +
		`<pbcorePublisher><publisher>TV 2</publisher><publisherRole>kanalnavn</publisherRole></pbcorePublisher>`
	if !strings.Contains(string(raw), want) {
		t.Fatalf("unexpected output:\n%s", raw)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	rec := mustParse(t, "uuid:1", testsupport.PrefixedTv2Document)
	raw, err := rec.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if !pbcore.Equivalent(rec, mustParse(t, "uuid:1", string(raw))) {
		t.Fatal("expected serialized document to reparse to an equivalent record")
	}
}

func TestEquivalentIgnoresPrefixesAndWhitespace(t *testing.T) {
	a := mustParse(t, "a", `<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html"><pbcoreAssetType>X</pbcoreAssetType></PBCoreDescriptionDocument>`)
	b := mustParse(t, "b", "<p:PBCoreDescriptionDocument xmlns:p=\"http://www.pbcore.org/PBCore/PBCoreNamespace.html\">\n  <p:pbcoreAssetType> X </p:pbcoreAssetType>\n  <!-- note -->\n</p:PBCoreDescriptionDocument>")
	if !pbcore.Equivalent(a, b) {
		t.Fatalf("expected equivalence:\n%s\n%s", pbcore.Canonical(a), pbcore.Canonical(b))
	}
	c := mustParse(t, "c", `<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html"><pbcoreAssetType>Y</pbcoreAssetType></PBCoreDescriptionDocument>`)
	if pbcore.Equivalent(a, c) {
		t.Fatal("expected differing text to break equivalence")
	}
}

func TestEditThenAccumulatesChanges(t *testing.T) {
	rec := mustParse(t, "uuid:3", testsupport.PrefixedTv2Document)
	edit, err := rec.InsertBroadcastPublishers(tv2Publishers...)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	edit, err = edit.Then((*pbcore.Record).MoveAlternativeTitle)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(edit.Changes) != 4 {
		t.Fatalf("expected 4 changes, got %#v", edit.Changes)
	}
	if edit.Changes[0].Field != pbcore.FieldPublisher || edit.Changes[3].Field != pbcore.FieldDescription {
		t.Fatalf("unexpected change order %#v", edit.Changes)
	}
	desc, _ := edit.Record.Description()
	if desc != "Byg videre" {
		t.Fatalf("unexpected description %q", desc)
	}
	if len(edit.Record.Publishers()) != 3 {
		t.Fatal("expected publisher insertion to survive the chained edit")
	}
}
