// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

var clientCols = []string{
	"id", "name", "industry", "website_url", "sitemap_url",
	"brand_voice", "unique_value_prop", "content_strategy",
	"wp_site_url", "wp_username", "wp_app_password", "gbp_location_id",
	"created_at", "updated_at",
}

func clientRow(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(clientCols).AddRow(
		id, "Acme Roofing", "roofing", "https://acme-roof.com", nil,
		"friendly", "fast service", "weekly posts",
		"https://acme-roof.com", "admin", "secret", nil,
		now, now,
	)
}

func TestClientFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM clients WHERE id").
		WithArgs(id).
		WillReturnRows(clientRow(id))

	s := NewClientStore(db)
	c, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("FindByID: got nil client")
	}
	if c.Name != "Acme Roofing" || c.Industry != "roofing" {
		t.Errorf("client: got %+v", c)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClientFindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM clients WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(clientCols))

	s := NewClientStore(db)
	c, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if c != nil {
		t.Errorf("FindByID: expected nil for missing row, got %+v", c)
	}
}

func TestClientList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := clientRow(uuid.New())
	now := time.Now()
	rows.AddRow(
		uuid.New(), "Bravo HVAC", "hvac", "https://bravo-hvac.com", nil,
		"direct", "24/7", "monthly", "", "", "", nil, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM clients ORDER BY created_at DESC").
		WillReturnRows(rows)

	s := NewClientStore(db)
	clients, err := s.List()
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("List: got %d clients, want 2", len(clients))
	}
	if clients[1].Name != "Bravo HVAC" {
		t.Errorf("second client: got %+v", clients[1])
	}
}

func TestClientDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("DELETE FROM clients WHERE id").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewClientStore(db)
	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
