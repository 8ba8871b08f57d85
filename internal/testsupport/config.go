package testsupport

import (
	"path/filepath"
	"testing"

	"greenline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The relay binds an ephemeral port and the Resend key is a placeholder.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Dataset = filepath.Join(base, "src", "data", "projects.json")
	cfgVal.Paths.VideosDir = filepath.Join(base, "src", "videos")
	cfgVal.Paths.LogDir = ""
	cfgVal.Contact.Bind = "127.0.0.1:0"
	cfgVal.Contact.Resend.APIKey = "test"
	cfgVal.Logging.Level = "error"

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

// WithResend points the Resend provider at baseURL using key.
func WithResend(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Contact.Provider = config.ProviderResend
		b.cfg.Contact.Resend.BaseURL = baseURL
		b.cfg.Contact.Resend.APIKey = key
	}
}

// WithFormSubmit selects FormSubmit with the given endpoints. An empty
// fallback disables the form fallback.
func WithFormSubmit(ajax, fallback string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Contact.Provider = config.ProviderFormSubmit
		b.cfg.Contact.FormSubmit.AjaxEndpoint = ajax
		b.cfg.Contact.FormSubmit.FallbackEndpoint = fallback
		b.cfg.Contact.FormSubmit.Fallback = fallback != ""
	}
}

// WithArchive enables the submission archive inside the test directory.
func WithArchive() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Contact.ArchivePath = filepath.Join(b.baseDir, "archive", "submissions.db")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(filepath.Dir(cfg.Paths.Dataset)))
}
