// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package wordpress is a thin client for the WordPress REST API using
// application-password basic authentication. It only covers what the
// publish stage needs: creating draft posts and probing credentials.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Credentials identify a WordPress site and an application-password login.
type Credentials struct {
	SiteURL     string
	Username    string
	AppPassword string
}

// Post is the payload for a new post. Status is always forced to "draft"
// by CreateDraft — generated content never goes live automatically.
type Post struct {
	Title           string
	Content         string
	MetaDescription string
	Tags            []string
	Categories      []string
}

// PublishResult carries the identifiers of the created draft.
type PublishResult struct {
	PostID  int    `json:"post_id"`
	PostURL string `json:"post_url"`
	EditURL string `json:"edit_url"`
}

// Client talks to one or many WordPress sites; credentials are passed per
// call because every tenant publishes to its own site.
type Client struct {
	http *http.Client
}

// New creates a WordPress client.
func New() *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateDraft publishes a post as a draft and returns its id, canonical
// URL, and a derived edit URL. The edit URL is built by string-appending
// the admin path — it is not independently verified.
func (c *Client) CreateDraft(ctx context.Context, creds Credentials, post Post) (*PublishResult, error) {
	site := strings.TrimRight(creds.SiteURL, "/")

	body := map[string]any{
		"title":   post.Title,
		"content": post.Content,
		"status":  "draft",
	}
	if post.MetaDescription != "" {
		body["excerpt"] = post.MetaDescription
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("wordpress marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		site+"/wp-json/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("wordpress request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(creds.Username, creds.AppPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wordpress read body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordpress API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID   int    `json:"id"`
		Link string `json:"link"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("wordpress unmarshal: %w", err)
	}

	return &PublishResult{
		PostID:  created.ID,
		PostURL: created.Link,
		EditURL: fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", site, created.ID),
	}, nil
}

// TestConnection probes the credentials against the current-user endpoint.
// Returns the authenticated user's display name on success.
func (c *Client) TestConnection(ctx context.Context, creds Credentials) (string, error) {
	site := strings.TrimRight(creds.SiteURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		site+"/wp-json/wp/v2/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("wordpress request: %w", err)
	}
	req.SetBasicAuth(creds.Username, creds.AppPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("wordpress http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("wordpress read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wordpress auth failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var user struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &user); err != nil {
		return "", fmt.Errorf("wordpress unmarshal: %w", err)
	}
	return user.Name, nil
}
