package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"reklamefix/internal/batch"
	"reklamefix/internal/config"
	"reklamefix/internal/pbcore"
	"reklamefix/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	store      *testsupport.FakeStore
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("DOMS_USERNAME", "")
	t.Setenv("DOMS_PASSWORD", "")

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(base, "reklamefix.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		store:      testsupport.NewFakeStore(),
		configPath: configPath,
		baseDir:    base,
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *cliTestEnv) runWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWith(func(*config.Config, *slog.Logger) (batch.RemoteStore, error) {
		return e.store, nil
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireEquivalent(t *testing.T, got, want string) {
	t.Helper()
	gotRec, err := pbcore.Parse("got", []byte(got))
	if err != nil {
		t.Fatalf("content does not parse: %v\n%s", err, got)
	}
	wantRec, err := pbcore.Parse("want", []byte(want))
	if err != nil {
		t.Fatalf("fixture does not parse: %v", err)
	}
	if !pbcore.Equivalent(gotRec, wantRec) {
		t.Fatalf("unexpected content:\n%s\nwant:\n%s", pbcore.Canonical(gotRec), pbcore.Canonical(wantRec))
	}
}
