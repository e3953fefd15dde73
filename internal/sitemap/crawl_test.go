// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func crawlSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `<html><head><title>Acme Roofing</title>
<meta name="keywords" content="roofing, repairs"></head>
<body>
<a href="/services/repair">Repair</a>
<a href="/blog/care">Care</a>
<a href="https://elsewhere.example/page">Off-site</a>
<a href="/logo.png">Logo</a>
</body></html>`)
	})
	mux.HandleFunc("/services/repair", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Roof Repair</title></head><body><h2>Leak fixes</h2></body></html>`)
	})
	mux.HandleFunc("/blog/care", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head></head><body><h1>Roof Care</h1></body></html>`)
	})
	return srv
}

func TestCrawl(t *testing.T) {
	srv := crawlSite(t)

	c := NewCrawler(10)
	pages, err := c.Crawl(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Crawl: unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("pages: got %d, want 3 (off-site and asset links skipped)", len(pages))
	}

	byPath := map[string]Page{}
	for _, p := range pages {
		u, err := url.Parse(p.URL)
		if err != nil {
			t.Fatalf("parse page url: %v", err)
		}
		byPath[u.Path] = p
	}

	home := byPath["/"]
	if home.Title != "Acme Roofing" {
		t.Errorf("home title: got %q", home.Title)
	}
	if home.Category != "home" {
		t.Errorf("home category: got %q", home.Category)
	}
	if len(home.Keywords) != 2 || home.Keywords[0] != "roofing" {
		t.Errorf("home keywords: got %v", home.Keywords)
	}

	repair := byPath["/services/repair"]
	if repair.Category != "services" {
		t.Errorf("repair category: got %q", repair.Category)
	}
	// No meta keywords on this page, so h2 headings stand in.
	if len(repair.Keywords) != 1 || repair.Keywords[0] != "Leak fixes" {
		t.Errorf("repair keywords: got %v", repair.Keywords)
	}

	// Title falls back to h1 when the title tag is absent.
	care := byPath["/blog/care"]
	if care.Title != "Roof Care" {
		t.Errorf("care title: got %q", care.Title)
	}
}

func TestCrawl_RespectsLimit(t *testing.T) {
	srv := crawlSite(t)

	c := NewCrawler(1)
	pages, err := c.Crawl(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Crawl: unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("pages: got %d, want exactly the limit", len(pages))
	}
}

func TestCrawl_StartPageUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCrawler(5)
	if _, err := c.Crawl(context.Background(), srv.URL); err == nil {
		t.Fatal("Crawl: expected error when the start page cannot be fetched")
	}
}

func TestResolveLink(t *testing.T) {
	start, _ := url.Parse("https://acme-roof.com/")

	tests := []struct {
		href string
		want string
	}{
		{"/services", "https://acme-roof.com/services"},
		{"https://acme-roof.com/about#team", "https://acme-roof.com/about"},
		{"https://other.example/page", ""},
		{"mailto:hi@acme-roof.com", ""},
		{"/brochure.pdf", ""},
	}
	for _, tt := range tests {
		if got := resolveLink(start, tt.href); got != tt.want {
			t.Errorf("resolveLink(%q): got %q, want %q", tt.href, got, tt.want)
		}
	}
}
