package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"greenline/internal/logging"
	"greenline/internal/testsupport"
)

func TestRunServesAndArchives(t *testing.T) {
	upstream := newUpstream(t)
	cfg := testsupport.NewConfig(t, testsupport.WithResend(upstream, "key"), testsupport.WithArchive())

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logging.NewNop(), ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not start")
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Post("http://"+addr+"/api/send-contact", "application/json",
		strings.NewReader(`{"nome":"Ana","email":"a@b.com","mensagem":"Oi"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("relay did not stop")
	}

	store := testsupport.MustOpenArchive(t, cfg)
	subs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 || subs[0].Status != "sent" || subs[0].UpstreamID != "re_daemon" {
		t.Fatalf("unexpected archive %+v", subs)
	}
}

func TestRunRejectsUnknownProvider(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Contact.Provider = "pigeon"
	if err := run(context.Background(), cfg, logging.NewNop(), nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func newUpstream(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"re_daemon"}`)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
