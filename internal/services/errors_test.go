package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"greenline/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUpstream, "contact", "resend", "Falha ao enviar e-mail", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"upstream failure", "contact", "resend", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToInternal(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrInternal) {
		t.Fatalf("expected internal marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestUserMessage(t *testing.T) {
	tagged := services.Wrap(services.ErrNotFound, "projects", "get", "Projeto não encontrado", nil)
	wrapped := fmt.Errorf("command failed: %w", tagged)
	if got := services.UserMessage(wrapped); got != "Projeto não encontrado" {
		t.Fatalf("unexpected user message %q", got)
	}
	plain := errors.New("plain failure")
	if got := services.UserMessage(plain); got != "plain failure" {
		t.Fatalf("expected plain text fallback, got %q", got)
	}
	if got := services.UserMessage(nil); got != "" {
		t.Fatalf("expected empty message for nil, got %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		marker error
		want   int
	}{
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrUpstream, http.StatusBadGateway},
		{services.ErrConfiguration, http.StatusInternalServerError},
		{services.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := services.Wrap(tt.marker, "test", "op", "msg", nil)
		if got := services.HTTPStatus(err); got != tt.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tt.marker, got, tt.want)
		}
	}
	if got := services.HTTPStatus(errors.New("unknown")); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for untagged errors, got %d", got)
	}
}

func TestKindAndExitCode(t *testing.T) {
	conflict := services.Wrap(services.ErrConflict, "projects", "add", "dup", nil)
	if services.Kind(conflict) != "conflict" {
		t.Fatalf("unexpected kind %q", services.Kind(conflict))
	}
	if services.Kind(errors.New("x")) != "internal" {
		t.Fatal("expected untagged errors to be internal")
	}
	if services.ExitCode(nil) != 0 {
		t.Fatal("expected zero exit code for nil")
	}
	if services.ExitCode(conflict) == 0 {
		t.Fatal("expected non-zero exit code for failures")
	}
}
