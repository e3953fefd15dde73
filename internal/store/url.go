// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"postforge/internal/models"
)

// ErrDomainMismatch is returned when a discovered URL's host does not match
// the owning client's registered website host.
var ErrDomainMismatch = fmt.Errorf("discovered url host does not match client domain")

// URLStore handles discovered-URL database operations.
type URLStore struct {
	db *sql.DB
}

// NewURLStore creates a new URLStore with the given database connection.
func NewURLStore(db *sql.DB) *URLStore {
	return &URLStore{db: db}
}

// Create inserts a discovered URL for the given client. The URL's host must
// belong to the client's registered domain; anything else is rejected with
// ErrDomainMismatch before any SQL is issued.
func (s *URLStore) Create(client *models.Client, u *models.DiscoveredURL) (*models.DiscoveredURL, error) {
	clientHost, err := client.RegisteredHost()
	if err != nil {
		return nil, fmt.Errorf("parse client website url: %w", err)
	}
	if !hostWithinDomain(u.URL, clientHost) {
		return nil, ErrDomainMismatch
	}

	result := &models.DiscoveredURL{}
	var keywords string
	err = s.db.QueryRow(`
		INSERT INTO discovered_urls (client_id, url, title, category, keywords)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (client_id, url) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			keywords = EXCLUDED.keywords
		RETURNING id, client_id, url, title, category, keywords, created_at
	`, client.ID, u.URL, u.Title, u.Category, joinKeywords(u.Keywords),
	).Scan(
		&result.ID, &result.ClientID, &result.URL, &result.Title,
		&result.Category, &keywords, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create discovered url: %w", err)
	}
	result.Keywords = splitKeywords(keywords)
	return result, nil
}

// ListByClient returns all discovered URLs for a client, newest first.
func (s *URLStore) ListByClient(clientID uuid.UUID) ([]models.DiscoveredURL, error) {
	rows, err := s.db.Query(`
		SELECT id, client_id, url, title, category, keywords, created_at
		FROM discovered_urls
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list discovered urls: %w", err)
	}
	defer rows.Close()

	var items []models.DiscoveredURL
	for rows.Next() {
		var u models.DiscoveredURL
		var keywords string
		if err := rows.Scan(
			&u.ID, &u.ClientID, &u.URL, &u.Title, &u.Category,
			&keywords, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan discovered url: %w", err)
		}
		u.Keywords = splitKeywords(keywords)
		items = append(items, u)
	}
	return items, rows.Err()
}

// DeleteByClient removes every discovered URL owned by a client. Used when
// re-indexing a site from scratch.
func (s *URLStore) DeleteByClient(clientID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM discovered_urls WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("delete discovered urls: %w", err)
	}
	return nil
}

// hostWithinDomain reports whether rawURL's host equals the registered host
// or is a subdomain of it.
func hostWithinDomain(rawURL, registeredHost string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := models.NormalizeHost(parsed.Host)
	return host == registeredHost || strings.HasSuffix(host, "."+registeredHost)
}

// joinKeywords flattens a keyword list into the comma-separated column form.
func joinKeywords(kw []string) string {
	return strings.Join(kw, ",")
}

// splitKeywords expands the comma-separated column form, dropping empties.
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
