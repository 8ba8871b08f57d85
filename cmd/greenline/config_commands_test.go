package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenline/internal/testsupport"
)

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := env.run(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Configuração de exemplo escrita em "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = env.run(t, "config", "init", "--path", target)
	requireUserError(t, err, "Arquivo de configuração já existe em "+target+" (use --overwrite)")
	if _, _, err := env.run(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+env.configPath)
	requireContains(t, out, "********")
	if strings.Contains(out, `api_key = 'test'`) || strings.Contains(out, `api_key = "test"`) {
		t.Fatalf("secret leaked:\n%s", out)
	}
}

func TestCheckReportsPreflightResults(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "check")
	requireUserError(t, err, "1 verificação(ões) falharam")

	if err := os.MkdirAll(env.cfg.Paths.VideosDir, 0o755); err != nil {
		t.Fatal(err)
	}
	out, _, err := env.run(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Dataset:")
	requireContains(t, out, "(2 projects)")
	requireContains(t, out, "[INFO] Disabled")
}

func TestCheckReportsFormSubmitProvider(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFormSubmit("https://forms.example/ajax/x", "https://forms.example/x"))
	testsupport.WriteVideos(t, env.cfg)

	out, _, err := env.run(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "[OK] formsubmit -> https://forms.example/ajax/x (fallback enabled)")
}
