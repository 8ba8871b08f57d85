package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"greenline/internal/config"
	"greenline/internal/projects"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteDataset stores raw JSON as the configured dataset.
func WriteDataset(t testing.TB, cfg *config.Config, raw string) {
	t.Helper()
	WriteFile(t, cfg.Paths.Dataset, raw)
}

// ReadDataset loads the configured dataset, failing the test on error.
func ReadDataset(t testing.TB, cfg *config.Config) []projects.Record {
	t.Helper()

	records, err := projects.NewStore(cfg.Paths.Dataset, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return records
}

// WriteVideos creates empty video files in the configured videos directory.
func WriteVideos(t testing.TB, cfg *config.Config, names ...string) {
	t.Helper()

	if err := os.MkdirAll(cfg.Paths.VideosDir, 0o755); err != nil {
		t.Fatalf("mkdir videos: %v", err)
	}
	for _, name := range names {
		WriteFile(t, filepath.Join(cfg.Paths.VideosDir, name), "")
	}
}
