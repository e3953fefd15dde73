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

// SubAccountStore handles scheduling-vendor credential database operations.
type SubAccountStore struct {
	db *sql.DB
}

// NewSubAccountStore creates a new SubAccountStore with the given database connection.
func NewSubAccountStore(db *sql.DB) *SubAccountStore {
	return &SubAccountStore{db: db}
}

// Upsert stores or replaces the credential for (client, location). Replacing
// reactivates the row and refreshes the token.
func (s *SubAccountStore) Upsert(a *models.SubAccount) (*models.SubAccount, error) {
	result := &models.SubAccount{}
	err := s.db.QueryRow(`
		INSERT INTO sub_accounts (client_id, location_id, access_token, active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (client_id, location_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			active = TRUE
		RETURNING id, client_id, location_id, access_token, active, created_at
	`, a.ClientID, a.LocationID, a.AccessToken).Scan(
		&result.ID, &result.ClientID, &result.LocationID,
		&result.AccessToken, &result.Active, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert sub account: %w", err)
	}
	return result, nil
}

// ActiveByClient returns the authoritative sub-account for a client: the
// latest active row by creation order. Returns nil if none exists.
func (s *SubAccountStore) ActiveByClient(clientID uuid.UUID) (*models.SubAccount, error) {
	a := &models.SubAccount{}
	err := s.db.QueryRow(`
		SELECT id, client_id, location_id, access_token, active, created_at
		FROM sub_accounts
		WHERE client_id = $1 AND active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, clientID).Scan(
		&a.ID, &a.ClientID, &a.LocationID,
		&a.AccessToken, &a.Active, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active sub account: %w", err)
	}
	return a, nil
}

// ListByClient returns all sub-accounts for a client, newest first.
func (s *SubAccountStore) ListByClient(clientID uuid.UUID) ([]models.SubAccount, error) {
	rows, err := s.db.Query(`
		SELECT id, client_id, location_id, access_token, active, created_at
		FROM sub_accounts
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list sub accounts: %w", err)
	}
	defer rows.Close()

	var items []models.SubAccount
	for rows.Next() {
		var a models.SubAccount
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.LocationID,
			&a.AccessToken, &a.Active, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sub account: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// Deactivate marks a sub-account inactive without deleting its history.
func (s *SubAccountStore) Deactivate(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE sub_accounts SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate sub account: %w", err)
	}
	return nil
}
