package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reklamefix/internal/testsupport"
)

func TestInspectFileListsChanges(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteFile(t, filepath.Join(env.baseDir, "cinema.xml"), []byte(testsupport.CinemaDocument))
	output := filepath.Join(env.baseDir, "fixed.xml")

	stdout, _, err := env.run(t, "inspect", "--file", input, "--output", output)
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}
	requireContains(t, stdout, "Biografreklamefilm")
	requireContains(t, stdout, "2 change(s) needed")
	requireContains(t, stdout, "alternative_title")
	requireContains(t, stdout, "Sommerreklame 2015")

	fixed, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read fixed record: %v", err)
	}
	requireEquivalent(t, string(fixed), testsupport.UpdatedCinemaDocument)
	if len(env.store.Calls()) != 0 {
		t.Fatalf("expected no remote calls, got %v", env.store.Calls())
	}
}

func TestInspectCheck(t *testing.T) {
	env := setupCLITestEnv(t)
	broken := testsupport.WriteFile(t, filepath.Join(env.baseDir, "broken.xml"), []byte(testsupport.CinemaDocument))
	fixed := testsupport.WriteFile(t, filepath.Join(env.baseDir, "fixed.xml"), []byte(testsupport.UpdatedCinemaDocument))

	if _, _, err := env.run(t, "inspect", "--check", "--file", broken); !errors.Is(err, errChangesNeeded) {
		t.Fatalf("expected errChangesNeeded, got %v", err)
	}
	stdout, _, err := env.run(t, "inspect", "--check", "--file", fixed)
	if err != nil {
		t.Fatalf("inspect --check on fixed record returned error: %v", err)
	}
	requireContains(t, stdout, "already fixed")
}

func TestInspectFetchesFromDOMS(t *testing.T) {
	env := setupCLITestEnv(t)
	env.store.Put("uuid:tv2", testsupport.Tv2Document)

	stdout, stderr, err := env.run(t, "inspect", "uuid:tv2", "--output", "-")
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}
	requireContains(t, stderr, "change(s) needed")
	requireContains(t, stderr, "tv2d/channel_name")
	if !strings.HasPrefix(strings.TrimSpace(stdout), "<?xml") {
		t.Fatalf("expected fixed XML on stdout, got %q", stdout)
	}
	requireEquivalent(t, stdout, testsupport.UpdatedTv2Document)
	if got := env.store.CountOp(testsupport.CallWrite); got != 0 {
		t.Fatalf("expected no writes, got %d", got)
	}
}

func TestInspectUnclassified(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteFile(t, filepath.Join(env.baseDir, "radio.xml"), []byte(testsupport.WithAssetType("Radioreklame")))

	stdout, _, err := env.run(t, "inspect", "--check", "--file", input)
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}
	requireContains(t, stdout, "unsupported asset type")
}

func TestInspectRequiresOneSource(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := env.run(t, "inspect"); err == nil {
		t.Fatal("expected error without ID or --file")
	}
	if _, _, err := env.run(t, "inspect", "uuid:x", "--file", "x.xml"); err == nil {
		t.Fatal("expected error with both ID and --file")
	}
}
