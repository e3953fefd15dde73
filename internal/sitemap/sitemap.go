// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitemap discovers pages on a client's site, either by parsing
// sitemap XML (standard urlset and sitemapindex formats) or by a bounded
// same-host crawl. Discovered pages become internal-link candidates for
// generated content.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxChildSitemaps bounds how many child sitemaps of an index are fetched.
const maxChildSitemaps = 5

// Entry is a single URL extracted from a sitemap.
type Entry struct {
	Loc     string `json:"loc"`
	LastMod string `json:"lastmod,omitempty"`
}

// xmlURLSet is the root element of a standard sitemap XML file.
type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []xmlURL `xml:"url"`
}

// xmlURL is a single <url> entry inside a <urlset>.
type xmlURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// xmlSitemapIndex is the root element of a sitemap index XML file.
type xmlSitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []xmlSitemap `xml:"sitemap"`
}

// xmlSitemap is a single <sitemap> entry inside a <sitemapindex>.
type xmlSitemap struct {
	Loc string `xml:"loc"`
}

// Parse parses sitemap XML and returns the contained URL entries.
func Parse(body []byte) ([]Entry, error) {
	var urlset xmlURLSet
	if err := xml.Unmarshal(body, &urlset); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}

	entries := make([]Entry, 0, len(urlset.URLs))
	for _, u := range urlset.URLs {
		entries = append(entries, Entry{Loc: u.Loc, LastMod: u.LastMod})
	}
	return entries, nil
}

// ParseIndex parses a sitemap index file and returns the child sitemap URLs.
func ParseIndex(body []byte) ([]string, error) {
	var index xmlSitemapIndex
	if err := xml.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("parse sitemap index: %w", err)
	}

	urls := make([]string, 0, len(index.Sitemaps))
	for _, s := range index.Sitemaps {
		urls = append(urls, s.Loc)
	}
	return urls, nil
}

// Fetcher downloads and parses sitemaps over HTTP.
type Fetcher struct {
	http *http.Client
}

// NewFetcher creates a sitemap fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads a sitemap URL and returns its entries. Sitemap index
// files are followed one level deep, bounded to maxChildSitemaps children.
func (f *Fetcher) Fetch(ctx context.Context, sitemapURL string) ([]Entry, error) {
	body, err := f.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	// Try the plain urlset form first; fall back to a sitemap index.
	if entries, err := Parse(body); err == nil && len(entries) > 0 {
		return entries, nil
	}

	children, err := ParseIndex(body)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: not a urlset or index: %w", sitemapURL, err)
	}
	if len(children) > maxChildSitemaps {
		children = children[:maxChildSitemaps]
	}

	var all []Entry
	for _, child := range children {
		childBody, err := f.get(ctx, child)
		if err != nil {
			return nil, err
		}
		entries, err := Parse(childBody)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sitemap request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sitemap http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("sitemap read body: %w", err)
	}
	return body, nil
}
