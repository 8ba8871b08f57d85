package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"greenline/internal/config"
	"greenline/internal/services"
	"greenline/internal/testsupport"
)

const sampleDataset = `[
  {
    "name": "Caure Grupo 1",
    "link": "https://greenline.example/caure-grupo-1",
    "country": "Brasil",
    "state": "Pará",
    "biome": "Amazônia",
    "vintage": "09/2024",
    "credits": 1200
  },
  {
    "name": "Fazenda Três Irmãos",
    "link": "",
    "country": "Brasil",
    "state": "Mato Grosso",
    "biome": "Cerrado",
    "vintage": "01/2025",
    "credits": 300
  }
]
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	for _, key := range []string{"GREENLINE_DATASET", "GREENLINE_VIDEOS_DIR", "GREENLINE_BIND", "RESEND_API_KEY", "EMAIL_TO", "EMAIL_FROM", "EMAIL_BCC"} {
		t.Setenv(key, "")
	}

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "greenline.toml")
	writeTestConfig(t, configPath, cfg)
	testsupport.WriteDataset(t, cfg, sampleDataset)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
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

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) datasetBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(e.cfg.Paths.Dataset)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	return data
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireUserError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q", want)
	}
	if got := services.UserMessage(err); got != want {
		t.Fatalf("user message = %q, want %q", got, want)
	}
	if services.ExitCode(err) == 0 {
		t.Fatal("expected non-zero exit code")
	}
}
