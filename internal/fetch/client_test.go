package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the page for any status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "<html><body>gone</body></html>")
		}))
		defer srv.Close()

		page, err := NewClient().Get(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", page.StatusCode)
		}
		if !strings.Contains(page.Body, "gone") {
			t.Errorf("body not captured: %q", page.Body)
		}
	})

	t.Run("sends user agent and extra headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotLang string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotLang = r.Header.Get("Accept-Language")
		}))
		defer srv.Close()

		client := NewClient(
			WithUserAgent("audit-bot/2.0"),
			WithHeaders(map[string]string{"Accept-Language": "en"}),
		)
		if _, err := client.Get(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotUA != "audit-bot/2.0" {
			t.Errorf("expected custom user agent, got %q", gotUA)
		}
		if gotLang != "en" {
			t.Errorf("expected Accept-Language header, got %q", gotLang)
		}
	})

	t.Run("truncates oversized bodies", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, strings.Repeat("x", 1024))
		}))
		defer srv.Close()

		page, err := NewClient(WithMaxBodySize(100)).Get(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Body) != 100 {
			t.Errorf("expected body truncated to 100 bytes, got %d", len(page.Body))
		}
	})

	t.Run("decodes declared charsets", func(t *testing.T) {
		t.Parallel()

		// "café" in ISO-8859-1: é is a single 0xE9 byte.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			w.Write([]byte{'c', 'a', 'f', 0xE9})
		}))
		defer srv.Close()

		page, err := NewClient().Get(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "café" {
			t.Errorf("expected decoded UTF-8 body, got %q", page.Body)
		}
	})
}

func TestClientGetHTML(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-success statuses", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient().GetHTML(context.Background(), srv.URL)
		var fe *Error
		if !errors.As(err, &fe) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if fe.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected status 500 in error, got %d", fe.StatusCode)
		}
	})

	t.Run("rejects non-HTML content types", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"ok":true}`)
		}))
		defer srv.Close()

		_, err := NewClient().GetHTML(context.Background(), srv.URL)
		var fe *Error
		if !errors.As(err, &fe) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if fe.ContentType != "application/json" {
			t.Errorf("expected content type in error, got %q", fe.ContentType)
		}
	})

	t.Run("accepts HTML responses", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html></html>")
		}))
		defer srv.Close()

		page, err := NewClient().GetHTML(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "<html></html>" {
			t.Errorf("unexpected body %q", page.Body)
		}
	})
}
