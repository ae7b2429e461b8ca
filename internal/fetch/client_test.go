package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetchPage tests page fetching behavior.
func TestFetchPage(t *testing.T) {
	t.Parallel()

	t.Run("returns the page body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "apodwall/") {
				t.Errorf("unexpected User-Agent: %q", got)
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Astronomy Picture of the Day</body></html>"))
		}))
		defer srv.Close()

		client := NewClient()
		body, err := client.FetchPage(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("failed to fetch page: %v", err)
		}
		if !strings.Contains(body, "Astronomy Picture of the Day") {
			t.Errorf("unexpected body: %q", body)
		}
	})

	t.Run("decodes legacy charsets", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// 0xE9 is "é" in ISO-8859-1 and invalid UTF-8 on its own.
			_, _ = w.Write([]byte("<html><body>nebul\xe9</body></html>"))
		}))
		defer srv.Close()

		client := NewClient()
		body, err := client.FetchPage(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("failed to fetch page: %v", err)
		}
		if !strings.Contains(body, "nebulé") {
			t.Errorf("expected decoded ISO-8859-1 content, got %q", body)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient()
		if _, err := client.FetchPage(context.Background(), srv.URL); !errors.Is(err, ErrBadStatus) {
			t.Errorf("expected ErrBadStatus, got %v", err)
		}
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		t.Parallel()

		// Reserve a port, then close it so the connection is refused.
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		client := NewClient(WithTimeout(2 * time.Second))
		if _, err := client.FetchPage(context.Background(), url); err == nil {
			t.Error("expected an error for an unreachable server")
		}
	})

	t.Run("honors body size limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
		}))
		defer srv.Close()

		client := NewClient(WithMaxPageSize(16))
		body, err := client.FetchPage(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("failed to fetch page: %v", err)
		}
		if len(body) > 16 {
			t.Errorf("expected body limited to 16 bytes, got %d", len(body))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		client := NewClient()
		if _, err := client.FetchPage(ctx, srv.URL); err == nil {
			t.Error("expected an error after context cancellation")
		}
	})
}
