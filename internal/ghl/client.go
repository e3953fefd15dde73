// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ghl is a thin bearer-token client for the social-post scheduling
// vendor (GoHighLevel). It covers listing the social accounts connected at
// a location and submitting a post; account selection policy lives in the
// social pipeline, not here.
package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// apiVersion is the vendor's required Version header value.
const apiVersion = "2021-07-28"

// Account is one social account connected at a location.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

// PostRequest is the payload for creating a social post.
type PostRequest struct {
	AccountIDs   []string   `json:"accountIds"`
	Summary      string     `json:"summary"`
	MediaURLs    []string   `json:"mediaUrls,omitempty"`
	Status       string     `json:"status"`
	ScheduleDate *time.Time `json:"scheduleDate,omitempty"`
}

// PostResult carries the vendor identifiers of a created post.
type PostResult struct {
	PostID string `json:"post_id"`
}

// Client talks to the scheduling vendor's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a scheduling client. baseURL is overridable for tests;
// empty means the vendor's production endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://services.leadconnectorhq.com"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListAccounts fetches the social accounts connected at a location.
func (c *Client) ListAccounts(ctx context.Context, token, locationID string) ([]Account, error) {
	url := fmt.Sprintf("%s/social-media-posting/%s/accounts", c.baseURL, locationID)

	respBody, err := c.do(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results struct {
			Accounts []Account `json:"accounts"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("ghl unmarshal accounts: %w", err)
	}
	return result.Results.Accounts, nil
}

// CreatePost submits a post at a location for the given accounts.
func (c *Client) CreatePost(ctx context.Context, token, locationID string, post PostRequest) (*PostResult, error) {
	url := fmt.Sprintf("%s/social-media-posting/%s/posts", c.baseURL, locationID)

	payload, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("ghl marshal post: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, url, token, payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Post struct {
			ID string `json:"_id"`
		} `json:"post"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("ghl unmarshal post: %w", err)
	}
	return &PostResult{PostID: result.Post.ID}, nil
}

// TestConnection verifies the token and location by listing accounts.
// Returns the number of connected accounts.
func (c *Client) TestConnection(ctx context.Context, token, locationID string) (int, error) {
	accounts, err := c.ListAccounts(ctx, token, locationID)
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// do issues one authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, url, token string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("ghl request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghl http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghl read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ghl API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
