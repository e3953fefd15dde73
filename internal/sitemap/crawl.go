// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultCrawlLimit bounds how many pages a crawl visits.
const DefaultCrawlLimit = 25

// Page is one crawled page with the metadata used to describe it as an
// internal-link candidate.
type Page struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Crawler performs a bounded breadth-first crawl of a single host.
type Crawler struct {
	http  *http.Client
	limit int
}

// NewCrawler creates a crawler that visits at most limit pages.
func NewCrawler(limit int) *Crawler {
	if limit <= 0 {
		limit = DefaultCrawlLimit
	}
	return &Crawler{
		http:  &http.Client{Timeout: 10 * time.Second},
		limit: limit,
	}
}

// Crawl walks the site starting at siteURL, following only same-host links,
// and returns page metadata for each visited page. Individual page failures
// are logged and skipped; the crawl fails only if the start page cannot be
// fetched.
func (c *Crawler) Crawl(ctx context.Context, siteURL string) ([]Page, error) {
	start, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("crawl parse start url: %w", err)
	}

	queue := []string{start.String()}
	visited := make(map[string]bool)
	var pages []Page

	for len(queue) > 0 && len(pages) < c.limit {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		page, links, err := c.fetchPage(ctx, current)
		if err != nil {
			if len(pages) == 0 && len(queue) == 0 {
				return nil, err
			}
			slog.Warn("crawl page skipped", "url", current, "error", err)
			continue
		}
		pages = append(pages, *page)

		for _, link := range links {
			resolved := resolveLink(start, link)
			if resolved != "" && !visited[resolved] {
				queue = append(queue, resolved)
			}
		}
	}

	return pages, nil
}

// fetchPage downloads one page and extracts its metadata and outbound links.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (*Page, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("crawl request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("crawl http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("crawl fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("crawl parse html: %w", err)
	}

	page := &Page{
		URL:      pageURL,
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Category: categorizeURL(pageURL),
		Keywords: extractKeywords(doc),
	}
	if page.Title == "" {
		page.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, href)
		}
	})

	return page, links, nil
}

// extractKeywords reads the meta keywords tag, falling back to h2 headings.
func extractKeywords(doc *goquery.Document) []string {
	if content, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok && content != "" {
		parts := strings.Split(content, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	var headings []string
	doc.Find("h2").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
		return i < 4
	})
	return headings
}

// categorizeURL tags a page by its first path segment ("services", "blog", ...).
func categorizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "page"
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "home"
	}
	return strings.ToLower(segments[0])
}

// resolveLink resolves href against the start URL and returns it only when
// it stays on the same host and looks like an HTML page.
func resolveLink(start *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := start.ResolveReference(ref)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if !strings.EqualFold(resolved.Host, start.Host) {
		return ""
	}

	// Skip obvious non-page assets.
	lower := strings.ToLower(resolved.Path)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf", ".zip", ".css", ".js", ".xml"} {
		if strings.HasSuffix(lower, ext) {
			return ""
		}
	}

	resolved.Fragment = ""
	return resolved.String()
}
