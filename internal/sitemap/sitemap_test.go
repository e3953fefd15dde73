// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://acme-roof.com/</loc><lastmod>2026-01-10</lastmod></url>
  <url><loc>https://acme-roof.com/services</loc></url>
  <url><loc>https://acme-roof.com/blog/roof-care</loc></url>
</urlset>`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(urlsetXML))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(entries))
	}
	if entries[0].Loc != "https://acme-roof.com/" || entries[0].LastMod != "2026-01-10" {
		t.Errorf("first entry: got %+v", entries[0])
	}
	if entries[1].LastMod != "" {
		t.Errorf("second entry lastmod: got %q, want empty", entries[1].LastMod)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("this is not xml <<<")); err == nil {
		t.Fatal("Parse: expected error for malformed XML")
	}
}

func TestParseIndex(t *testing.T) {
	indexXML := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://acme-roof.com/sitemap-pages.xml</loc></sitemap>
  <sitemap><loc>https://acme-roof.com/sitemap-posts.xml</loc></sitemap>
</sitemapindex>`

	children, err := ParseIndex([]byte(indexXML))
	if err != nil {
		t.Fatalf("ParseIndex: unexpected error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("children: got %d, want 2", len(children))
	}
	if children[0] != "https://acme-roof.com/sitemap-pages.xml" {
		t.Errorf("first child: got %q", children[0])
	}
}

func TestFetch_PlainURLSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(urlsetXML))
	}))
	defer srv.Close()

	f := NewFetcher()
	entries, err := f.Fetch(context.Background(), srv.URL+"/sitemap.xml")
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries: got %d, want 3", len(entries))
	}
}

func TestFetch_FollowsIndex(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/child-1.xml</loc></sitemap>
  <sitemap><loc>%s/child-2.xml</loc></sitemap>
</sitemapindex>`, srv.URL, srv.URL)
	})
	child := func(loc string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s</loc></url>
</urlset>`, loc)
		}
	}
	mux.HandleFunc("/child-1.xml", child("https://acme-roof.com/a"))
	mux.HandleFunc("/child-2.xml", child("https://acme-roof.com/b"))

	f := NewFetcher()
	entries, err := f.Fetch(context.Background(), srv.URL+"/sitemap.xml")
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2 from two children", len(entries))
	}
	if entries[0].Loc != "https://acme-roof.com/a" || entries[1].Loc != "https://acme-roof.com/b" {
		t.Errorf("entries: got %+v", entries)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), srv.URL+"/sitemap.xml"); err == nil {
		t.Fatal("Fetch: expected error for HTTP 404")
	}
}
