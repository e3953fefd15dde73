// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package social produces short localized promotional posts and optionally
// pushes them live through the scheduling vendor. The push is best-effort:
// every outcome is persisted locally, and the caller always learns whether
// a live post succeeded separately from whether generation succeeded.
package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"postforge/internal/ai"
	"postforge/internal/ghl"
	"postforge/internal/models"
	"postforge/internal/pipeline"
	"postforge/internal/storage"
	"postforge/internal/store"
)

const (
	// minPostLen and maxPostLen bound the generated post content.
	minPostLen = 200
	maxPostLen = 400
)

// Result is the pipeline outcome: the persisted post plus whether a live
// push succeeded. Posted is false for draft-only outcomes even when
// generation succeeded.
type Result struct {
	Post   *models.SocialPost `json:"post"`
	Posted bool               `json:"posted"`
}

// Pipeline generates and publishes social posts for a client.
type Pipeline struct {
	text        ai.TextGenerator
	image       ai.ImageGenerator
	posts       *store.SocialPostStore
	subAccounts *store.SubAccountStore
	scheduler   *ghl.Client
	media       *storage.Client // may be nil — photos then degrade to absent
}

// New creates a social post pipeline.
func New(
	text ai.TextGenerator,
	image ai.ImageGenerator,
	posts *store.SocialPostStore,
	subAccounts *store.SubAccountStore,
	scheduler *ghl.Client,
	media *storage.Client,
) *Pipeline {
	return &Pipeline{
		text:        text,
		image:       image,
		posts:       posts,
		subAccounts: subAccounts,
		scheduler:   scheduler,
		media:       media,
	}
}

// CreatePost generates one post for the topic, attaches a photo when the
// image service cooperates, pushes it through the client's active
// sub-account when one exists, and persists the outcome. Scheduling-push
// failures never fail the pipeline; the post is saved as a draft instead.
func (p *Pipeline) CreatePost(ctx context.Context, client *models.Client, topic string) (*Result, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &pipeline.ValidationError{Field: "topic"}
	}
	if strings.TrimSpace(client.Name) == "" {
		return nil, &pipeline.ValidationError{Field: "client name"}
	}
	if strings.TrimSpace(client.Industry) == "" {
		return nil, &pipeline.ValidationError{Field: "client industry"}
	}

	content, err := p.generateContent(ctx, client, topic)
	if err != nil {
		return nil, err
	}

	// Photo is optional: any failure degrades to a post without an image.
	imageURL := p.generatePhoto(ctx, client, content)

	post := &models.SocialPost{
		ClientID: client.ID,
		Content:  content,
		ImageURL: imageURL,
		Status:   models.SocialPostStatusDraft,
	}
	if client.WebsiteURL != "" {
		post.LearnMoreURL = &client.WebsiteURL
	}

	posted := p.push(ctx, client, post)

	saved, err := p.posts.Create(post)
	if err != nil {
		return nil, fmt.Errorf("save social post: %w", err)
	}

	return &Result{Post: saved, Posted: posted}, nil
}

// generateContent asks for a 200-400 character localized post. Over-length
// output is hard-truncated to 397 characters plus an ellipsis, never
// regenerated — a documented lossy fallback.
func (p *Pipeline) generateContent(ctx context.Context, client *models.Client, topic string) (string, error) {
	system := fmt.Sprintf(`You write social media posts for local businesses. Write ONE post of
%d-%d characters about the given topic.

Rules:
- Sound like a real local business owner, warm and direct.
- Never use stock AI phrasing ("unlock", "elevate", "delve", "in today's fast-paced world").
- No hashtags, no emojis, no markdown.
- End with a short call to action.
- Output ONLY the post text.`, minPostLen, maxPostLen)

	user := fmt.Sprintf("Business: %s\nIndustry: %s\nLocation focus: local customers\nTopic: %s",
		client.Name, client.Industry, topic)
	if client.BrandVoice != "" {
		user += "\nBrand voice: " + client.BrandVoice
	}

	text, err := p.text.Generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("social content generation: %w", err)
	}

	content := strings.TrimSpace(text)
	if content == "" {
		return "", fmt.Errorf("social content generation: empty post returned")
	}
	return Truncate(content), nil
}

// Truncate enforces the post length bound: text over 400 characters becomes
// exactly the first 397 characters plus "...".
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= maxPostLen {
		return content
	}
	return string(runes[:maxPostLen-3]) + "..."
}

// generatePhoto requests a square photorealistic image and stores it.
// Returns nil on any failure; the caller treats absence as publishable.
func (p *Pipeline) generatePhoto(ctx context.Context, client *models.Client, content string) *string {
	if p.image == nil || p.media == nil {
		return nil
	}

	prompt := fmt.Sprintf(
		"A square, photorealistic photo for a %s business social post. Real-world scene, natural light, no text, no illustration style. Post: %s",
		client.Industry, content)

	img, contentType, err := p.image.GenerateImage(ctx, prompt)
	if err != nil {
		slog.Warn("social photo generation failed", "client_id", client.ID, "error", err)
		return nil
	}

	url, err := p.media.UploadImage(ctx, img, contentType)
	if err != nil {
		slog.Warn("social photo upload failed", "client_id", client.ID, "error", err)
		return nil
	}
	return &url
}

// push submits the post through the client's active sub-account. Returns
// true only when the vendor accepted the post; every failure path leaves
// the post in draft state.
func (p *Pipeline) push(ctx context.Context, client *models.Client, post *models.SocialPost) bool {
	account, err := p.subAccounts.ActiveByClient(client.ID)
	if err != nil {
		slog.Warn("sub account lookup failed", "client_id", client.ID, "error", err)
		return false
	}
	if account == nil {
		slog.Debug("no active sub account, saving draft", "client_id", client.ID)
		return false
	}

	accounts, err := p.scheduler.ListAccounts(ctx, account.AccessToken, account.LocationID)
	if err != nil {
		slog.Warn("list social accounts failed", "client_id", client.ID, "error", err)
		return false
	}
	if len(accounts) == 0 {
		slog.Warn("no social accounts connected", "client_id", client.ID, "location_id", account.LocationID)
		return false
	}

	target := selectAccount(accounts)

	summary := post.Content
	if post.LearnMoreURL != nil {
		summary += "\n\nLearn more: " + *post.LearnMoreURL
	}

	req := ghl.PostRequest{
		AccountIDs: []string{target.ID},
		Summary:    summary,
		Status:     "published",
	}
	if post.ImageURL != nil {
		req.MediaURLs = []string{*post.ImageURL}
	}

	result, err := p.scheduler.CreatePost(ctx, account.AccessToken, account.LocationID, req)
	if err != nil {
		slog.Warn("scheduling push failed, saving draft", "client_id", client.ID, "error", err)
		return false
	}

	post.Status = models.SocialPostStatusPublished
	post.ExternalPostID = &result.PostID
	post.ExternalAccountID = &target.ID
	return true
}

// selectAccount picks the account whose platform name contains "google"
// (case-insensitive), falling back to the first available account.
// This is a placeholder selection strategy pending an explicit
// platform-type field from the vendor.
func selectAccount(accounts []ghl.Account) ghl.Account {
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.Platform), "google") ||
			strings.Contains(strings.ToLower(a.Name), "google") {
			return a
		}
	}
	return accounts[0]
}
