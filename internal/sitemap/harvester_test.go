package sitemap

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestHarvesterHarvest(t *testing.T) {
	t.Parallel()

	t.Run("walks robots declared sitemap index", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap-index.xml\n", srvURL)
		})
		mux.HandleFunc("/sitemap-index.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/sitemap-pages.xml</loc></sitemap>
</sitemapindex>`, srvURL)
		})
		mux.HandleFunc("/sitemap-pages.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/about</loc></url>
  <url><loc>%s/</loc></url>
  <url><loc>https://other.example/elsewhere</loc></url>
</urlset>`, srvURL, srvURL)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		result, err := New(WithDelay(0)).Harvest(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"/", "/about"}
		if !reflect.DeepEqual(result.Pathnames, want) {
			t.Errorf("expected pathnames %v, got %v", want, result.Pathnames)
		}
		if len(result.SitemapsWalked) != 2 {
			t.Errorf("expected 2 sitemaps walked, got %v", result.SitemapsWalked)
		}
		if len(result.Errors) != 0 {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("falls back to conventional sitemap location", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		// No robots.txt handler: the 404 body parses as an empty ruleset
		// with no Sitemap directives.
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/page</loc></url></urlset>`, srvURL)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		result, err := New(WithDelay(0)).Harvest(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Pathnames) != 1 || result.Pathnames[0] != "/page" {
			t.Errorf("expected pathnames [/page], got %v", result.Pathnames)
		}
	})

	t.Run("decompresses gzipped sitemaps", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/sitemap.xml.gz\n", srvURL)
		})
		mux.HandleFunc("/sitemap.xml.gz", func(w http.ResponseWriter, r *http.Request) {
			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			fmt.Fprintf(gz, `<urlset><url><loc>%s/zipped</loc></url></urlset>`, srvURL)
			gz.Close()
			w.Write(buf.Bytes())
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		result, err := New(WithDelay(0)).Harvest(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Pathnames) != 1 || result.Pathnames[0] != "/zipped" {
			t.Errorf("expected pathnames [/zipped], got %v", result.Pathnames)
		}
	})

	t.Run("survives cyclic sitemap indexes", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		var hits int
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/a.xml\n", srvURL)
		})
		mux.HandleFunc("/a.xml", func(w http.ResponseWriter, r *http.Request) {
			hits++
			fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s/a.xml</loc></sitemap></sitemapindex>`, srvURL)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		if _, err := New(WithDelay(0)).Harvest(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hits != 1 {
			t.Errorf("cyclic sitemap fetched %d times, want 1", hits)
		}
	})

	t.Run("records broken sitemaps as errors", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/broken.xml\nSitemap: %s/good.xml\n", srvURL, srvURL)
		})
		mux.HandleFunc("/broken.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "this is not xml <<<")
		})
		mux.HandleFunc("/good.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/ok</loc></url></urlset>`, srvURL)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		result, err := New(WithDelay(0)).Harvest(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", result.Errors)
		}
		if len(result.Pathnames) != 1 || result.Pathnames[0] != "/ok" {
			t.Errorf("harvest did not continue past the broken sitemap: %v", result.Pathnames)
		}
	})

	t.Run("rejects a non-http seed", func(t *testing.T) {
		t.Parallel()

		if _, err := New(WithDelay(0)).Harvest(context.Background(), "file:///etc/passwd"); err == nil {
			t.Error("expected an error for a non-http seed")
		}
	})
}
