// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"postforge/internal/ai"
	"postforge/internal/ghl"
	"postforge/internal/models"
	"postforge/internal/pipeline"
	"postforge/internal/store"
)

type fakeText struct {
	response string
	err      error
}

func (f *fakeText) Generate(context.Context, string, string) (string, error) {
	return f.response, f.err
}

func (f *fakeText) GenerateGrounded(context.Context, string, string) (string, []ai.Source, error) {
	return "", nil, errors.New("unexpected GenerateGrounded call")
}

func (f *fakeText) GenerateJSON(context.Context, string, string, any) (json.RawMessage, error) {
	return nil, errors.New("unexpected GenerateJSON call")
}

func testClient() *models.Client {
	return &models.Client{
		ID:         uuid.New(),
		Name:       "Acme Roofing",
		Industry:   "roofing",
		WebsiteURL: "https://acme-roof.com",
	}
}

var socialPostCols = []string{
	"id", "client_id", "content", "image_url", "learn_more_url",
	"status", "scheduled_at", "external_post_id", "external_account_id", "created_at",
}

// expectInsert registers the social-post insert and echoes back the written
// values.
func expectInsert(mock sqlmock.Sqlmock, clientID uuid.UUID) {
	mock.ExpectQuery("INSERT INTO social_posts").
		WillReturnRows(sqlmock.NewRows(socialPostCols).
			AddRow(uuid.New(), clientID, "content", nil, "https://acme-roof.com",
				"draft", nil, nil, nil, time.Now()))
}

func expectNoSubAccount(mock sqlmock.Sqlmock, clientID uuid.UUID) {
	mock.ExpectQuery("SELECT (.+) FROM sub_accounts").
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "location_id", "access_token", "active", "created_at"}))
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 400)
	if got := Truncate(short); got != short {
		t.Errorf("Truncate must not touch text at the limit")
	}

	long := strings.Repeat("b", 450)
	got := Truncate(long)
	want := strings.Repeat("b", 397) + "..."
	if got != want {
		t.Errorf("Truncate: got %d chars ending %q, want first 397 chars plus ellipsis", len(got), got[390:])
	}
	if len([]rune(got)) > 400 {
		t.Errorf("Truncate: result length %d exceeds 400", len([]rune(got)))
	}
}

func TestCreatePost_ValidatesInputs(t *testing.T) {
	p := New(&fakeText{}, nil, nil, nil, nil, nil)

	tests := []struct {
		name   string
		client *models.Client
		topic  string
	}{
		{"empty topic", testClient(), "  "},
		{"missing name", &models.Client{Industry: "roofing"}, "t"},
		{"missing industry", &models.Client{Name: "Acme"}, "t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CreatePost(context.Background(), tt.client, tt.topic)
			var ve *pipeline.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("CreatePost: got %v, want ValidationError", err)
			}
		})
	}
}

func TestCreatePost_NoSubAccountSavesDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	client := testClient()
	expectNoSubAccount(mock, client.ID)
	expectInsert(mock, client.ID)

	// The scheduling vendor must never be contacted without a sub-account.
	ghlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected call to the scheduling vendor")
	}))
	defer ghlSrv.Close()

	p := New(&fakeText{response: strings.Repeat("Local roofs need love. ", 10)},
		nil, store.NewSocialPostStore(db), store.NewSubAccountStore(db),
		ghl.New(ghlSrv.URL), nil)

	result, err := p.CreatePost(context.Background(), client, "storm prep")
	if err != nil {
		t.Fatalf("CreatePost: unexpected error: %v", err)
	}
	if result.Posted {
		t.Error("posted: got true, want false without a sub-account")
	}
	if result.Post.Status != models.SocialPostStatusDraft {
		t.Errorf("status: got %q, want draft", result.Post.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreatePost_PushFailureFallsBackToDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	client := testClient()
	mock.ExpectQuery("SELECT (.+) FROM sub_accounts").
		WithArgs(client.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "location_id", "access_token", "active", "created_at"}).
			AddRow(uuid.New(), client.ID, "loc-1", "tok-1", true, time.Now()))
	expectInsert(mock, client.ID)

	ghlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ghlSrv.Close()

	p := New(&fakeText{response: strings.Repeat("Roof tip. ", 30)},
		nil, store.NewSocialPostStore(db), store.NewSubAccountStore(db),
		ghl.New(ghlSrv.URL), nil)

	result, err := p.CreatePost(context.Background(), client, "storm prep")
	if err != nil {
		t.Fatalf("CreatePost: push failure must not fail the pipeline, got: %v", err)
	}
	if result.Posted {
		t.Error("posted: got true, want false after push failure")
	}
}

func TestCreatePost_PushesThroughGoogleAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	client := testClient()
	mock.ExpectQuery("SELECT (.+) FROM sub_accounts").
		WithArgs(client.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "location_id", "access_token", "active", "created_at"}).
			AddRow(uuid.New(), client.ID, "loc-1", "tok-1", true, time.Now()))
	mock.ExpectQuery("INSERT INTO social_posts").
		WillReturnRows(sqlmock.NewRows(socialPostCols).
			AddRow(uuid.New(), client.ID, "content", nil, "https://acme-roof.com",
				"published", nil, "post-9", "acc-gbp", time.Now()))

	var createBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/social-media-posting/loc-1/accounts", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"accounts": []map[string]string{
					{"id": "acc-fb", "name": "Page", "platform": "facebook"},
					{"id": "acc-gbp", "name": "Profile", "platform": "Google Business"},
				},
			},
		})
	})
	mux.HandleFunc("/social-media-posting/loc-1/posts", func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		createBody = body
		json.NewEncoder(w).Encode(map[string]any{"post": map[string]string{"_id": "post-9"}})
	})
	ghlSrv := httptest.NewServer(mux)
	defer ghlSrv.Close()

	p := New(&fakeText{response: strings.Repeat("Roof tip. ", 30)},
		nil, store.NewSocialPostStore(db), store.NewSubAccountStore(db),
		ghl.New(ghlSrv.URL), nil)

	result, err := p.CreatePost(context.Background(), client, "storm prep")
	if err != nil {
		t.Fatalf("CreatePost: unexpected error: %v", err)
	}
	if !result.Posted {
		t.Fatal("posted: got false, want true")
	}
	if result.Post.Status != models.SocialPostStatusPublished {
		t.Errorf("status: got %q, want published", result.Post.Status)
	}

	var req ghl.PostRequest
	if err := json.Unmarshal(createBody, &req); err != nil {
		t.Fatalf("unmarshal create body: %v", err)
	}
	if len(req.AccountIDs) != 1 || req.AccountIDs[0] != "acc-gbp" {
		t.Errorf("account selection: got %v, want the google-platform account", req.AccountIDs)
	}
	if !strings.Contains(req.Summary, "Learn more: https://acme-roof.com") {
		t.Errorf("summary must carry the learn-more CTA, got: %q", req.Summary)
	}
}

func TestCreatePost_ImageFailureDegrades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	client := testClient()
	expectNoSubAccount(mock, client.ID)
	expectInsert(mock, client.ID)

	// Image generator configured but storage absent: the photo branch is
	// skipped entirely and the post still succeeds.
	p := New(&fakeText{response: strings.Repeat("Roof tip. ", 30)},
		&failingImage{}, store.NewSocialPostStore(db), store.NewSubAccountStore(db),
		ghl.New("http://127.0.0.1:0"), nil)

	result, err := p.CreatePost(context.Background(), client, "storm prep")
	if err != nil {
		t.Fatalf("CreatePost: image failure must not fail the pipeline, got: %v", err)
	}
	if result.Post.ImageURL != nil {
		t.Errorf("image url: got %v, want nil", *result.Post.ImageURL)
	}
}

type failingImage struct{}

func (f *failingImage) GenerateImage(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("image service down")
}
