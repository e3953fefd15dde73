// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubAccount binds a client to the external social-scheduling vendor:
// a stored access token plus the vendor-side routing identifier.
// At most one is authoritative per client at any time — the latest active
// row by creation order. Replacement is an upsert keyed by
// (client, location id).
type SubAccount struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	LocationID  string    `json:"location_id"`
	AccessToken string    `json:"-"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
