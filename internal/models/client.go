// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the core data types shared between the stores,
// the generation pipelines, and the HTTP handlers.
package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a tenant business profile. Every generation pipeline reads the
// profile to parameterize prompts; the ID is immutable after creation.
type Client struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Industry        string    `json:"industry"`
	WebsiteURL      string    `json:"website_url"`
	SitemapURL      *string   `json:"sitemap_url,omitempty"`
	BrandVoice      string    `json:"brand_voice"`
	UniqueValueProp string    `json:"unique_value_prop"`
	ContentStrategy string    `json:"content_strategy"`

	// WordPress publishing credentials (application password flow).
	WPSiteURL     string `json:"wp_site_url"`
	WPUsername    string `json:"wp_username"`
	WPAppPassword string `json:"wp_app_password"`

	// Optional routing identifier for the social-scheduling vendor.
	GBPLocationID *string `json:"gbp_location_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPublishingCredentials reports whether the client carries a complete
// set of WordPress credentials. Publish must be rejected before any outbound
// call when this is false.
func (c *Client) HasPublishingCredentials() bool {
	return c.WPSiteURL != "" && c.WPUsername != "" && c.WPAppPassword != ""
}

// RegisteredHost returns the client's website host, lowercased and with any
// leading "www." stripped. Used to enforce the domain-isolation invariant on
// discovered URLs.
func (c *Client) RegisteredHost() (string, error) {
	u, err := url.Parse(c.WebsiteURL)
	if err != nil {
		return "", err
	}
	return NormalizeHost(u.Host), nil
}

// NormalizeHost lowercases a host, strips a port, and drops a leading "www.".
func NormalizeHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i != -1 {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
