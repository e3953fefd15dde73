// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialPostStatus represents the lifecycle state of a generated social post.
type SocialPostStatus string

const (
	SocialPostStatusDraft     SocialPostStatus = "draft"
	SocialPostStatusScheduled SocialPostStatus = "scheduled"
	SocialPostStatusPublished SocialPostStatus = "published"
)

// SocialPost is one short-form localized post (200-400 characters).
// Status transitions are the only mutation path; posts are never deleted
// automatically.
type SocialPost struct {
	ID           uuid.UUID        `json:"id"`
	ClientID     uuid.UUID        `json:"client_id"`
	Content      string           `json:"content"`
	ImageURL     *string          `json:"image_url,omitempty"`
	LearnMoreURL *string          `json:"learn_more_url,omitempty"`
	Status       SocialPostStatus `json:"status"`
	ScheduledAt  *time.Time       `json:"scheduled_at,omitempty"`

	// Identifiers returned by the external scheduling service, when a live
	// push succeeded.
	ExternalPostID    *string `json:"external_post_id,omitempty"`
	ExternalAccountID *string `json:"external_account_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsLive reports whether the post reached the scheduling service.
func (p *SocialPost) IsLive() bool {
	return p.Status == SocialPostStatusScheduled || p.Status == SocialPostStatusPublished
}
