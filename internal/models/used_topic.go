// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// UsedTopic records a topic that was published for a client. Rows are
// append-only: written after a successful publish and read to bias future
// topic discovery away from duplicates.
type UsedTopic struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}
