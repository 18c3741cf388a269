package idlist_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"reklamefix/internal/idlist"
	"reklamefix/internal/testsupport"
)

func TestReadSkipsBlankAndCommentLines(t *testing.T) {
	input := "# exported 2016-03-01\nuuid:1\n\n  uuid:2  \r\n\t\n# uuid:ignored\nuuid:3"
	list, err := idlist.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"uuid:1", "uuid:2", "uuid:3"}; !reflect.DeepEqual(list.IDs, want) {
		t.Fatalf("IDs = %q, want %q", list.IDs, want)
	}
}

func TestReadDropsDuplicates(t *testing.T) {
	list, err := idlist.Read(strings.NewReader("uuid:1\nuuid:2\nuuid:1\nuuid:2\nuuid:3\n"))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"uuid:1", "uuid:2", "uuid:3"}; !reflect.DeepEqual(list.IDs, want) {
		t.Fatalf("IDs = %q, want %q", list.IDs, want)
	}
	if list.Duplicates != 2 {
		t.Fatalf("Duplicates = %d, want 2", list.Duplicates)
	}
}

func TestReadStripsUTF8BOM(t *testing.T) {
	list, err := idlist.Read(strings.NewReader("\uFEFFuuid:1\nuuid:2\n"))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if list.IDs[0] != "uuid:1" {
		t.Fatalf("BOM not stripped: %q", list.IDs[0])
	}
}

func TestReadDecodesUTF16WithBOM(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.Bytes([]byte("uuid:a\r\nuuid:b\r\n"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	list, err := idlist.Read(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"uuid:a", "uuid:b"}; !reflect.DeepEqual(list.IDs, want) {
		t.Fatalf("IDs = %q, want %q", list.IDs, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := testsupport.WriteIDs(t, filepath.Join(t.TempDir(), "ids.txt"), "uuid:1", "uuid:2")
	list, err := idlist.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(list.IDs) != 2 {
		t.Fatalf("unexpected ids %q", list.IDs)
	}
}

func TestLoadFailures(t *testing.T) {
	if _, err := idlist.Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := idlist.Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
