package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenline/internal/config"
	"greenline/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, AccessWrite)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), AccessRead)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, AccessRead)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDataset(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(good, []byte(`[{"name":"A","credits":1}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDataset(good); !result.Passed || !strings.Contains(result.Detail, "1 projects") {
		t.Fatalf("expected pass, got %+v", result)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name":"A"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDataset(bad)
	if result.Passed || !strings.Contains(result.Detail, "projects.json precisa ser um array") {
		t.Fatalf("expected decode failure, got %+v", result)
	}

	if result := CheckDataset(filepath.Join(dir, "missing.json")); result.Passed {
		t.Fatal("expected failure for missing dataset")
	}
}

func TestCheckArchive(t *testing.T) {
	if result := CheckArchive(""); !result.Skipped || result.Passed {
		t.Fatalf("expected skipped result, got %+v", result)
	}
	path := filepath.Join(t.TempDir(), "not", "yet", "submissions.db")
	if result := CheckArchive(path); !result.Passed {
		t.Fatalf("expected pass for creatable archive path, got %+v", result)
	}
}

func TestCheckProviderConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if result := CheckProviderConfig(cfg); !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	cfg.Contact.Resend.APIKey = ""
	if result := CheckProviderConfig(cfg); result.Passed || !strings.Contains(result.Detail, "RESEND_API_KEY") {
		t.Fatalf("expected missing key failure, got %+v", result)
	}
	cfg.Contact.Provider = config.ProviderFormSubmit
	if result := CheckProviderConfig(cfg); !result.Passed {
		t.Fatalf("formsubmit needs no key, got %+v", result)
	}
}

func TestProbeProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			w.WriteHeader(http.StatusOK)
		case "Bearer sendonly":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"name":"restricted_api_key"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	tests := []struct {
		key  string
		pass bool
	}{
		{"good", true},
		{"sendonly", true},
		{"bad", false},
	}
	for _, tt := range tests {
		cfg := testsupport.NewConfig(t, testsupport.WithResend(srv.URL, tt.key))
		result := ProbeProvider(context.Background(), cfg)
		if result.Passed != tt.pass {
			t.Fatalf("key %q: got %+v", tt.key, result)
		}
	}
}

func TestRunAllFlagsMissingPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(context.Background(), cfg, Options{})
	failed := Failed(results)
	names := make([]string, 0, len(failed))
	for _, r := range failed {
		names = append(names, r.Name)
	}
	got := strings.Join(names, ",")
	if got != "Dataset,Dataset directory,Videos directory" {
		t.Fatalf("unexpected failures %q", got)
	}

	testsupport.WriteDataset(t, cfg, "[]\n")
	testsupport.WriteVideos(t, cfg)
	if failed := Failed(RunAll(context.Background(), cfg, Options{})); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, got %+v", failed)
	}
}
