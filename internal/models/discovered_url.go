// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscoveredURL is one page found on a client's site, by sitemap parse or
// crawl. Discovered URLs are the only candidates for contextual internal
// links in generated content; they must live on the client's registered
// domain (cross-client leakage is a defect, rejected at the store).
type DiscoveredURL struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}
