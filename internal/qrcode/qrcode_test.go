package qrcode

import (
	"bytes"
	"strings"
	"testing"
)

func TestPNG(t *testing.T) {
	png, err := PNG("https://go.dev", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("expected PNG signature")
	}
}

func TestPNG_Empty(t *testing.T) {
	if _, err := PNG("", 128); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal("https://go.dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 21 {
		t.Fatalf("expected at least 21 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "██") {
		t.Error("expected dark modules in output")
	}
}
