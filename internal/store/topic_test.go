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

var topicCols = []string{"id", "client_id", "topic", "created_at"}

func TestTopicStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("INSERT INTO used_topics").
		WithArgs(clientID, "Storm season roof prep").
		WillReturnRows(sqlmock.NewRows(topicCols).
			AddRow(uuid.New(), clientID, "Storm season roof prep", time.Now()))

	topic, err := NewTopicStore(db).Create(clientID, "Storm season roof prep")
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if topic.Topic != "Storm season roof prep" || topic.ClientID != clientID {
		t.Errorf("topic: got %+v", topic)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTopicStore_ListRecentByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM used_topics").
		WithArgs(clientID, 20).
		WillReturnRows(sqlmock.NewRows(topicCols).
			AddRow(uuid.New(), clientID, "newest", time.Now()).
			AddRow(uuid.New(), clientID, "older", time.Now().Add(-time.Hour)))

	topics, err := NewTopicStore(db).ListRecentByClient(clientID, 20)
	if err != nil {
		t.Fatalf("ListRecentByClient: unexpected error: %v", err)
	}
	if len(topics) != 2 || topics[0].Topic != "newest" {
		t.Errorf("topics: got %+v", topics)
	}
}

func TestTopicStore_ListRecentByClient_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM used_topics").
		WithArgs(clientID, 20).
		WillReturnRows(sqlmock.NewRows(topicCols))

	topics, err := NewTopicStore(db).ListRecentByClient(clientID, 20)
	if err != nil {
		t.Fatalf("ListRecentByClient: unexpected error: %v", err)
	}
	if topics != nil {
		t.Errorf("topics: got %v, want nil for no history", topics)
	}
}
