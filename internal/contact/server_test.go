package contact_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"greenline/internal/contact"
	"greenline/internal/testsupport"
)

func TestServerServesRoutesAndShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	stub := newResendStub(t, http.StatusOK, `{"id":"re_srv"}`)
	cfg := testsupport.NewConfig(t)

	srv, err := contact.NewServer(cfg, stub.sender("key"), nil, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	base := "http://" + srv.Addr()

	resp, err := client.Get(base + contact.RouteHealth)
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}

	for _, route := range []string{contact.RouteContact, contact.RouteNetlifyContact} {
		resp, err := client.Post(base+route, "application/json",
			strings.NewReader(`{"nome":"Ana","email":"a@b.com","mensagem":"Oi"}`))
		if err != nil {
			t.Fatalf("post %s: %v", route, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"id":"re_srv"`) {
			t.Fatalf("%s = %d %s", route, resp.StatusCode, body)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	stub.server.Close()
	client.CloseIdleConnections()
}
