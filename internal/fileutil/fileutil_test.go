package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicCreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "projects.json")

	if err := WriteFileAtomic(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("[{}]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[{}]\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
	if mode := FileMode(path, 0o644); mode != 0o600 {
		t.Fatalf("mode = %o, want 600", mode)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicLeavesOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Renaming a file over a non-empty directory fails.
	if err := WriteFileAtomic(target, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error when target is a directory")
	}
	if _, err := os.Stat(filepath.Join(target, "keep")); err != nil {
		t.Fatalf("original content disturbed: %v", err)
	}
}

func TestFileModeFallback(t *testing.T) {
	if got := FileMode(filepath.Join(t.TempDir(), "missing"), 0o640); got != 0o640 {
		t.Fatalf("FileMode fallback = %o", got)
	}
}
