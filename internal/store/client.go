// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides parameterized-query access to the relational
// tables. One store struct per table; each method issues independent
// statements on the shared connection pool.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"postforge/internal/models"
)

// ClientStore handles all client-profile database operations.
type ClientStore struct {
	db *sql.DB
}

// NewClientStore creates a new ClientStore with the given database connection.
func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

const clientColumns = `id, name, industry, website_url, sitemap_url,
	       brand_voice, unique_value_prop, content_strategy,
	       wp_site_url, wp_username, wp_app_password, gbp_location_id,
	       created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }, c *models.Client) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Industry, &c.WebsiteURL, &c.SitemapURL,
		&c.BrandVoice, &c.UniqueValueProp, &c.ContentStrategy,
		&c.WPSiteURL, &c.WPUsername, &c.WPAppPassword, &c.GBPLocationID,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

// List returns all clients ordered by creation date descending.
func (s *ClientStore) List() ([]models.Client, error) {
	rows, err := s.db.Query(`
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var items []models.Client
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a client by its UUID. Returns nil if not found.
func (s *ClientStore) FindByID(id uuid.UUID) (*models.Client, error) {
	c := &models.Client{}
	err := scanClient(s.db.QueryRow(`
		SELECT `+clientColumns+`
		FROM clients WHERE id = $1
	`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return c, nil
}

// Create inserts a new client and returns it with the generated ID.
func (s *ClientStore) Create(c *models.Client) (*models.Client, error) {
	result := &models.Client{}
	err := scanClient(s.db.QueryRow(`
		INSERT INTO clients (name, industry, website_url, sitemap_url,
		                     brand_voice, unique_value_prop, content_strategy,
		                     wp_site_url, wp_username, wp_app_password, gbp_location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+clientColumns+`
	`, c.Name, c.Industry, c.WebsiteURL, c.SitemapURL,
		c.BrandVoice, c.UniqueValueProp, c.ContentStrategy,
		c.WPSiteURL, c.WPUsername, c.WPAppPassword, c.GBPLocationID,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return result, nil
}

// Update modifies an existing client profile. The ID is never changed.
func (s *ClientStore) Update(c *models.Client) error {
	_, err := s.db.Exec(`
		UPDATE clients SET
			name = $1, industry = $2, website_url = $3, sitemap_url = $4,
			brand_voice = $5, unique_value_prop = $6, content_strategy = $7,
			wp_site_url = $8, wp_username = $9, wp_app_password = $10,
			gbp_location_id = $11, updated_at = NOW()
		WHERE id = $12
	`, c.Name, c.Industry, c.WebsiteURL, c.SitemapURL,
		c.BrandVoice, c.UniqueValueProp, c.ContentStrategy,
		c.WPSiteURL, c.WPUsername, c.WPAppPassword,
		c.GBPLocationID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client by ID. Owned URLs, topics, posts, and sub-accounts
// are removed by the cascade-delete foreign keys, not by application code.
func (s *ClientStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
