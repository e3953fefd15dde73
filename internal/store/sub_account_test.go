// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"postforge/internal/models"
)

var subAccountCols = []string{"id", "client_id", "location_id", "access_token", "active", "created_at"}

func TestSubAccountUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("INSERT INTO sub_accounts").
		WithArgs(clientID, "loc-1", "tok-1").
		WillReturnRows(sqlmock.NewRows(subAccountCols).
			AddRow(uuid.New(), clientID, "loc-1", "tok-1", true, time.Now()))

	s := NewSubAccountStore(db)
	saved, err := s.Upsert(&models.SubAccount{
		ClientID:    clientID,
		LocationID:  "loc-1",
		AccessToken: "tok-1",
	})
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}
	if !saved.Active {
		t.Error("Upsert: saved credential must be active")
	}
}

func TestSubAccountActiveByClient_NoneExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM sub_accounts").
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows(subAccountCols))

	s := NewSubAccountStore(db)
	account, err := s.ActiveByClient(clientID)
	if err != nil {
		t.Fatalf("ActiveByClient: unexpected error: %v", err)
	}
	if account != nil {
		t.Errorf("ActiveByClient: expected nil when no active row, got %+v", account)
	}
}

func TestSubAccountActiveByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM sub_accounts").
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows(subAccountCols).
			AddRow(uuid.New(), clientID, "loc-2", "tok-2", true, time.Now()))

	s := NewSubAccountStore(db)
	account, err := s.ActiveByClient(clientID)
	if err != nil {
		t.Fatalf("ActiveByClient: unexpected error: %v", err)
	}
	if account == nil || account.LocationID != "loc-2" {
		t.Errorf("ActiveByClient: got %+v", account)
	}
}

func TestSubAccountDeactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE sub_accounts SET active = FALSE").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewSubAccountStore(db)
	if err := s.Deactivate(id); err != nil {
		t.Fatalf("Deactivate: unexpected error: %v", err)
	}
}
