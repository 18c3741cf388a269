package testsupport

import (
	"path/filepath"
	"testing"

	"reklamefix/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with credentials and a per-test state directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.DOMS.Username = "fedoraAdmin"
	cfgVal.DOMS.Password = "fedoraAdminPass"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithEndpoint points the DOMS client at endpoint, typically an httptest server.
func WithEndpoint(endpoint string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DOMS.Endpoint = endpoint
	}
}

// WithWorkers sets the batch worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.Workers = config.ClampWorkers(n)
	}
}

// WithDryRun enables dry-run mode.
func WithDryRun() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.DryRun = true
	}
}

// WithoutJournal disables the run journal.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithIDsFile writes ids to a file under the test directory and configures it.
func WithIDsFile(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		b.cfg.Input.IDsFile = WriteIDs(b.t, filepath.Join(b.baseDir, "ids.txt"), ids...)
	}
}
