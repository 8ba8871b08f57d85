package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"greenline/internal/archive"
	"greenline/internal/testsupport"
)

func TestSubmissionsListRendersArchive(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithArchive())
	store := testsupport.MustOpenArchive(t, env.cfg)
	if _, err := store.Record(context.Background(), archive.Submission{
		Nome: "Ana", Email: "ana@example.com", Assunto: "Parceria", Mensagem: "Oi",
		Provider: "resend", Status: archive.StatusSent,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	out, _, err := env.run(t, "submissions", "list")
	if err != nil {
		t.Fatalf("submissions list: %v", err)
	}
	requireContains(t, out, "ana@example.com")
	requireContains(t, out, "Parceria")
	requireContains(t, out, "sent")
}

func TestSubmissionsListRequiresArchivePath(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := env.run(t, "submissions", "list")
	requireUserError(t, err, "contact.archive_path não configurado")
}

func TestTestContactSendsThroughResend(t *testing.T) {
	subjects := make(chan string, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		subject, _ := payload["subject"].(string)
		subjects <- subject
		_, _ = io.WriteString(w, `{"id":"re_cli"}`)
	}))
	defer upstream.Close()

	env := setupCLITestEnv(t, testsupport.WithResend(upstream.URL, "cli-key"))
	out, _, err := env.run(t, "test-contact")
	if err != nil {
		t.Fatalf("test-contact: %v", err)
	}
	requireContains(t, out, "id re_cli")
	if subject := <-subjects; subject != "Contato via site • Teste" {
		t.Fatalf("subject = %q", subject)
	}
}

func TestTestContactReportsMissingKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithResend("https://api.resend.test", ""))
	_, _, err := env.run(t, "test-contact")
	requireUserError(t, err, "RESEND_API_KEY não configurada no servidor.")
}
