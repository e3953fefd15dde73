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

// TopicStore handles used-topic database operations. The table is
// append-only: rows are written after a successful publish and removed
// only by the client cascade.
type TopicStore struct {
	db *sql.DB
}

// NewTopicStore creates a new TopicStore with the given database connection.
func NewTopicStore(db *sql.DB) *TopicStore {
	return &TopicStore{db: db}
}

// Create records a published topic for a client.
func (s *TopicStore) Create(clientID uuid.UUID, topic string) (*models.UsedTopic, error) {
	result := &models.UsedTopic{}
	err := s.db.QueryRow(`
		INSERT INTO used_topics (client_id, topic)
		VALUES ($1, $2)
		RETURNING id, client_id, topic, created_at
	`, clientID, topic).Scan(
		&result.ID, &result.ClientID, &result.Topic, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create used topic: %w", err)
	}
	return result, nil
}

// ListRecentByClient returns up to limit most recent topics for a client.
// Topic discovery feeds these into the prompt to bias away from duplicates.
func (s *TopicStore) ListRecentByClient(clientID uuid.UUID, limit int) ([]models.UsedTopic, error) {
	rows, err := s.db.Query(`
		SELECT id, client_id, topic, created_at
		FROM used_topics
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list used topics: %w", err)
	}
	defer rows.Close()

	var items []models.UsedTopic
	for rows.Next() {
		var t models.UsedTopic
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Topic, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan used topic: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
