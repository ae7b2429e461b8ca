package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/apodwall/internal/config"
	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/model"
	"github.com/nao1215/apodwall/internal/wallpaper"
)

// recordingSetter captures the path the run command asked to apply.
type recordingSetter struct {
	path string
}

func (s *recordingSetter) Set(_ context.Context, path string) error {
	s.path = path
	return nil
}

// TestNewRunCmd tests the run command creation.
func TestNewRunCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRunCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "run" {
			t.Errorf("expected use 'run', got %q", cmd.Use)
		}
	})

	t.Run("has url flag with the picture page default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("url")
		if flag == nil {
			t.Fatal("expected url flag")
		}
		if flag.DefValue != config.DefaultPageURL {
			t.Errorf("expected default %q, got %q", config.DefaultPageURL, flag.DefValue)
		}
	})

	t.Run("has dry-run flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("dry-run")
		if flag == nil {
			t.Fatal("expected dry-run flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
	})
}

// TestBuildRunConfig tests configuration assembly from flags and files.
func TestBuildRunConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildRunConfig(cmd)
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}
		if cfg.PageURL != config.DefaultPageURL {
			t.Errorf("expected default page URL, got %q", cfg.PageURL)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.DryRun {
			t.Error("expected dry-run to default to false")
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		args := []string{
			"--url", "https://apod.nasa.gov/apod/ap260830.html",
			"--output", "/tmp/picture.jpg",
			"--timeout", "5s",
			"--dry-run",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildRunConfig(cmd)
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}
		if cfg.PageURL != "https://apod.nasa.gov/apod/ap260830.html" {
			t.Errorf("unexpected page URL: %q", cfg.PageURL)
		}
		if cfg.ImagePath != "/tmp/picture.jpg" {
			t.Errorf("unexpected image path: %q", cfg.ImagePath)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("unexpected timeout: %v", cfg.Timeout)
		}
		if !cfg.DryRun {
			t.Error("expected dry-run to be set")
		}
	})

	t.Run("config file applies and flags win over it", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "pageURL: \"https://apod.nasa.gov/apod/ap260801.html\"\ntimeoutSeconds: 60\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewRunCmd()
		if err := cmd.ParseFlags([]string{"-c", configPath, "--timeout", "5s"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildRunConfig(cmd)
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}
		// The file sets the page URL, the flag beats the file's timeout.
		if cfg.PageURL != "https://apod.nasa.gov/apod/ap260801.html" {
			t.Errorf("expected the file's page URL, got %q", cfg.PageURL)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected the flag's timeout, got %v", cfg.Timeout)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if err := cmd.ParseFlags([]string{"-c", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildRunConfig(cmd); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestRunCommandIntegration drives the run command end to end against a
// local page server: the download, the wallpaper call, the journal
// insert, and the log file all go through the real command wiring.
//
// Not parallel: it redirects the XDG data directory and swaps the
// setter constructor, both of which are process-wide.
func TestRunCommandIntegration(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	setter := &recordingSetter{}
	origSetter := newSetter
	newSetter = func() wallpaper.Setter { return setter }
	t.Cleanup(func() { newSetter = origSetter })

	served := []byte("\xff\xd8\xfffull-size image payload\xff\xd9")
	mux := http.NewServeMux()
	mux.HandleFunc("/astropix.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>
<head><title> APOD: 2026 August 31 - Comet Dust over the Alps </title></head>
<body>
<a href="image/2608/CometDust_4000.jpg"><img src="image/2608/CometDust_960.jpg"></a>
<b> Comet Dust over the Alps </b>
</body></html>`)
	})
	mux.HandleFunc("/image/2608/CometDust_4000.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(served)
	})
	mux.HandleFunc("/video.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><iframe src="https://example.com/embed/comet"></iframe></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "apod.jpg")

	t.Run("successful run updates image, journal, and log", func(t *testing.T) {
		if err := os.WriteFile(dest, []byte("yesterday's picture"), 0600); err != nil {
			t.Fatalf("failed to seed destination: %v", err)
		}

		cmd := NewRunCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--url", srv.URL + "/astropix.html", "--output", dest})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to execute run command: %v", err)
		}

		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("failed to read destination: %v", err)
		}
		if string(data) != string(served) {
			t.Error("destination was not overwritten with the served image")
		}
		if setter.path != dest {
			t.Errorf("expected the setter to receive %q, got %q", dest, setter.path)
		}
		if !strings.Contains(out.String(), "Wallpaper updated.") {
			t.Errorf("unexpected command output: %q", out.String())
		}

		j, err := journal.Open(config.XDGDataDir(), journal.Options{EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open journal: %v", err)
		}
		defer j.Close()

		count, err := j.Count(context.Background())
		if err != nil {
			t.Fatalf("failed to count journal records: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 journal record, got %d", count)
		}

		latest, err := j.Latest(context.Background())
		if err != nil {
			t.Fatalf("failed to read latest journal record: %v", err)
		}
		if latest == nil {
			t.Fatal("expected a journal record for the run")
		}
		if latest.Status != string(model.StatusSuccess) {
			t.Errorf("expected status %q, got %q", model.StatusSuccess, latest.Status)
		}
		if latest.ImagePath != dest {
			t.Errorf("expected image path %q, got %q", dest, latest.ImagePath)
		}

		logInfo, err := os.Stat(filepath.Join(config.XDGDataDir(), config.DefaultLogFileName))
		if err != nil {
			t.Fatalf("expected a log file: %v", err)
		}
		if logInfo.Size() == 0 {
			t.Error("expected the log file to be non-empty")
		}
	})

	t.Run("failed run on a video day is still journaled", func(t *testing.T) {
		setter.path = ""

		cmd := NewRunCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--url", srv.URL + "/video.html", "--output", dest})
		if err := cmd.Execute(); err == nil {
			t.Fatal("expected the run to fail on a page without an image link")
		}

		if setter.path != "" {
			t.Error("setter must not run on a failed extraction")
		}
		if data, err := os.ReadFile(dest); err != nil || string(data) != string(served) {
			t.Error("failed run must leave the previous image in place")
		}

		j, err := journal.Open(config.XDGDataDir(), journal.Options{EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open journal: %v", err)
		}
		defer j.Close()

		count, err := j.Count(context.Background())
		if err != nil {
			t.Fatalf("failed to count journal records: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 journal records, got %d", count)
		}

		latest, err := j.Latest(context.Background())
		if err != nil || latest == nil {
			t.Fatalf("failed to read latest journal record: %v", err)
		}
		if latest.Status != string(model.StatusFailed) {
			t.Errorf("expected status %q, got %q", model.StatusFailed, latest.Status)
		}
		if latest.ErrorKind != string(model.ErrorKindParse) {
			t.Errorf("expected error kind %q, got %q", model.ErrorKindParse, latest.ErrorKind)
		}
	})
}
