// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"postforge/internal/models"
	"postforge/internal/store"
)

// TestSitemap fetches and parses the client's sitemap. With save=true the
// entries are persisted as discovered URLs; rows violating the
// domain-isolation rule are skipped and counted.
func (a *API) TestSitemap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID   string `json:"client_id"`
		SitemapURL string `json:"sitemap_url"`
		Save       bool   `json:"save"`
		Replace    bool   `json:"replace"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	sitemapURL := strings.TrimSpace(req.SitemapURL)
	if sitemapURL == "" && client.SitemapURL != nil {
		sitemapURL = *client.SitemapURL
	}
	if sitemapURL == "" {
		sitemapURL = strings.TrimRight(client.WebsiteURL, "/") + "/sitemap.xml"
	}

	entries, err := a.fetcher.Fetch(r.Context(), sitemapURL)
	if err != nil {
		writeFailure(w, "sitemap fetch failed", err)
		return
	}

	var saved, rejected int
	if req.Save {
		// Re-indexing replaces the stored link inventory wholesale.
		if req.Replace {
			if err := a.urls.DeleteByClient(client.ID); err != nil {
				writeError(w, http.StatusInternalServerError, "clear discovered urls failed", err.Error())
				return
			}
		}
		for _, entry := range entries {
			u := &models.DiscoveredURL{
				URL:      entry.Loc,
				Title:    titleFromURL(entry.Loc),
				Category: "sitemap",
			}
			if _, err := a.urls.Create(client, u); err != nil {
				if errors.Is(err, store.ErrDomainMismatch) {
					rejected++
					continue
				}
				writeError(w, http.StatusInternalServerError, "save discovered url failed", err.Error())
				return
			}
			saved++
		}
		if a.profile != nil {
			a.profile.Invalidate(r.Context(), client.ID)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sitemap_url": sitemapURL,
		"entries":     entries,
		"saved":       saved,
		"rejected":    rejected,
	})
}

// TestCrawl runs a bounded same-host crawl of the client's site. With
// save=true the pages are persisted as discovered URLs under the same
// domain-isolation rule as sitemap entries.
func (a *API) TestCrawl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
		URL      string `json:"url"`
		Save     bool   `json:"save"`
		Replace  bool   `json:"replace"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	startURL := strings.TrimSpace(req.URL)
	if startURL == "" {
		startURL = client.WebsiteURL
	}

	pages, err := a.crawler.Crawl(r.Context(), startURL)
	if err != nil {
		writeFailure(w, "crawl failed", err)
		return
	}

	var saved, rejected int
	if req.Save {
		if req.Replace {
			if err := a.urls.DeleteByClient(client.ID); err != nil {
				writeError(w, http.StatusInternalServerError, "clear discovered urls failed", err.Error())
				return
			}
		}
		for _, page := range pages {
			u := &models.DiscoveredURL{
				URL:      page.URL,
				Title:    page.Title,
				Category: page.Category,
				Keywords: page.Keywords,
			}
			if _, err := a.urls.Create(client, u); err != nil {
				if errors.Is(err, store.ErrDomainMismatch) {
					rejected++
					continue
				}
				slog.Warn("save crawled url failed", "url", page.URL, "error", err)
				continue
			}
			saved++
		}
		if a.profile != nil {
			a.profile.Invalidate(r.Context(), client.ID)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"start_url": startURL,
		"pages":     pages,
		"saved":     saved,
		"rejected":  rejected,
	})
}

// titleFromURL derives a readable title from the last path segment of a
// sitemap entry, which carries no page metadata of its own.
func titleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "Home"
	}
	last = strings.ReplaceAll(last, "-", " ")
	last = strings.ReplaceAll(last, "_", " ")

	words := strings.Fields(last)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
