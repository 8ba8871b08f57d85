package testsupport

import (
	"testing"

	"greenline/internal/archive"
	"greenline/internal/config"
)

// MustOpenArchive opens the configured submission archive and registers cleanup.
func MustOpenArchive(t testing.TB, cfg *config.Config) *archive.Store {
	t.Helper()

	store, err := archive.Open(cfg.Contact.ArchivePath)
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
