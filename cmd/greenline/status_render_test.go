package main

import (
	"bytes"
	"strings"
	"testing"

	"greenline/internal/preflight"
)

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("Dataset", statusError, "missing", false)
	if want := "  Dataset:                 [ERROR] missing"; got != want {
		t.Fatalf("renderStatusLine\n got: %q\nwant: %q", got, want)
	}

	colored := renderStatusLine("Dataset", statusOK, "", true)
	if !strings.HasPrefix(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected green line, got %q", colored)
	}
	if !strings.Contains(colored, "[OK]") {
		t.Fatalf("expected OK label, got %q", colored)
	}
}

func TestPreflightKind(t *testing.T) {
	tests := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Passed: true}, statusOK},
		{preflight.Result{Skipped: true}, statusInfo},
		{preflight.Result{}, statusError},
	}
	for _, tt := range tests {
		if got := preflightKind(tt.result); got != tt.want {
			t.Fatalf("preflightKind(%+v) = %d, want %d", tt.result, got, tt.want)
		}
	}
}

func TestShouldColorizeBuffer(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}
