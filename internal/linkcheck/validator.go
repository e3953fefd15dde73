// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MinExternalLinks and MaxExternalLinks bound how many external
	// references accepted content must carry.
	MinExternalLinks = 2
	MaxExternalLinks = 8

	// probeTimeout is the per-URL deadline for the liveness probe. This is
	// the one place in the system where an explicit timeout is applied.
	probeTimeout = 5 * time.Second
)

// Validator probes external links for liveness and enforces the per-industry
// allow-list on generated content.
type Validator struct {
	http *http.Client

	// allowed overrides the curated allow-list when non-nil (tests).
	allowed func(industry string) []string
}

// NewValidator creates a link validator using the curated allow-list.
func NewValidator() *Validator {
	return &Validator{
		http:    &http.Client{Timeout: probeTimeout},
		allowed: AllowedLinks,
	}
}

// NewValidatorWithAllowlist creates a validator with a custom allow-list
// source. Used by tests to point at local servers.
func NewValidatorWithAllowlist(allowed func(industry string) []string) *Validator {
	return &Validator{
		http:    &http.Client{Timeout: probeTimeout},
		allowed: allowed,
	}
}

// ExtractExternalLinks returns the href values of target="_blank" anchors in
// the HTML body, in document order, without duplicates.
func ExtractExternalLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse content html: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find(`a[target="_blank"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" && !seen[href] {
			seen[href] = true
			links = append(links, href)
		}
	})
	return links, nil
}

// ValidateContent checks the external links embedded in generated HTML:
// every link must be on the industry allow-list, the count must be within
// [MinExternalLinks, MaxExternalLinks], and every link must respond to a
// liveness probe. Any violation rejects the content.
func (v *Validator) ValidateContent(ctx context.Context, html, industry string) ([]string, error) {
	links, err := ExtractExternalLinks(html)
	if err != nil {
		return nil, err
	}

	allowed := v.allowed(industry)
	allowedSet := make(map[string]bool, len(allowed))
	for _, u := range allowed {
		allowedSet[u] = true
	}

	var external []string
	for _, link := range links {
		if !allowedSet[link] {
			return nil, fmt.Errorf("external link not on the %s allow-list: %s", industry, link)
		}
		external = append(external, link)
	}

	if len(external) < MinExternalLinks {
		return nil, fmt.Errorf("content has %d allow-listed external links, need at least %d",
			len(external), MinExternalLinks)
	}
	if len(external) > MaxExternalLinks {
		return nil, fmt.Errorf("content has %d external links, max is %d",
			len(external), MaxExternalLinks)
	}

	for _, link := range external {
		if err := v.Probe(ctx, link); err != nil {
			return nil, fmt.Errorf("external link failed validation: %s: %w", link, err)
		}
	}

	return external, nil
}

// Probe issues a HEAD request against the URL with the probe deadline,
// falling back to GET when HEAD is not allowed. Any non-2xx/3xx status is
// a failure.
func (v *Validator) Probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status, err := v.probeOnce(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed {
		status, err = v.probeOnce(ctx, http.MethodGet, url)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return fmt.Errorf("status %d", status)
	}
	return nil
}

func (v *Validator) probeOnce(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("probe request: %w", err)
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe: %w", err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
