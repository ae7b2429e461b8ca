package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	t.Run("returns ldflags version when set", func(t *testing.T) {
		orig := version
		version = "v1.2.3"
		t.Cleanup(func() { version = orig })

		if got := getVersion(); got != "v1.2.3" {
			t.Errorf("expected 'v1.2.3', got %q", got)
		}
	})

	t.Run("returns a non-empty fallback", func(t *testing.T) {
		orig := version
		version = ""
		t.Cleanup(func() { version = orig })

		if got := getVersion(); got == "" {
			t.Error("expected a non-empty version string")
		}
	})
}

// TestNewVersionCmd tests the version command.
func TestNewVersionCmd(t *testing.T) {
	t.Run("prints version information", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to execute version: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "apodwall version") {
			t.Errorf("expected version banner, got %q", out)
		}
		if !strings.Contains(out, "commit:") || !strings.Contains(out, "built:") {
			t.Errorf("expected commit and build date lines, got %q", out)
		}
	})
}
