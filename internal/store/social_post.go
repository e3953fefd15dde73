// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"postforge/internal/models"
)

// SocialPostStore handles generated-social-post database operations.
type SocialPostStore struct {
	db *sql.DB
}

// NewSocialPostStore creates a new SocialPostStore with the given database connection.
func NewSocialPostStore(db *sql.DB) *SocialPostStore {
	return &SocialPostStore{db: db}
}

const socialPostColumns = `id, client_id, content, image_url, learn_more_url,
	       status, scheduled_at, external_post_id, external_account_id, created_at`

func scanSocialPost(row interface{ Scan(...any) error }, p *models.SocialPost) error {
	return row.Scan(
		&p.ID, &p.ClientID, &p.Content, &p.ImageURL, &p.LearnMoreURL,
		&p.Status, &p.ScheduledAt, &p.ExternalPostID, &p.ExternalAccountID,
		&p.CreatedAt,
	)
}

// Create inserts a generated social post and returns it with the generated ID.
// One row is written for every pipeline outcome, draft or live.
func (s *SocialPostStore) Create(p *models.SocialPost) (*models.SocialPost, error) {
	result := &models.SocialPost{}
	err := scanSocialPost(s.db.QueryRow(`
		INSERT INTO social_posts (client_id, content, image_url, learn_more_url,
		                          status, scheduled_at, external_post_id, external_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+socialPostColumns+`
	`, p.ClientID, p.Content, p.ImageURL, p.LearnMoreURL,
		p.Status, p.ScheduledAt, p.ExternalPostID, p.ExternalAccountID,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create social post: %w", err)
	}
	return result, nil
}

// ListByClient returns all social posts for a client, newest first.
func (s *SocialPostStore) ListByClient(clientID uuid.UUID) ([]models.SocialPost, error) {
	rows, err := s.db.Query(`
		SELECT `+socialPostColumns+`
		FROM social_posts
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	defer rows.Close()

	var items []models.SocialPost
	for rows.Next() {
		var p models.SocialPost
		if err := scanSocialPost(rows, &p); err != nil {
			return nil, fmt.Errorf("scan social post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdateStatus transitions a post's lifecycle status. Status transitions are
// the only mutation path for social posts; the client scope is part of the
// predicate so one client can never touch another's posts. Returns
// sql.ErrNoRows when the post does not exist under that client.
func (s *SocialPostStore) UpdateStatus(id, clientID uuid.UUID, status models.SocialPostStatus) error {
	res, err := s.db.Exec(`
		UPDATE social_posts SET status = $1 WHERE id = $2 AND client_id = $3
	`, status, id, clientID)
	if err != nil {
		return fmt.Errorf("update social post status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update social post status: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
