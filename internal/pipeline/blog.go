// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"postforge/internal/ai"
	"postforge/internal/cache"
	"postforge/internal/linkcheck"
	"postforge/internal/models"
	"postforge/internal/storage"
	"postforge/internal/store"
	"postforge/internal/wordpress"
)

// recentTopicLimit is how many previously published topics are fed back
// into topic discovery to bias away from duplicates.
const recentTopicLimit = 20

// Pipeline runs the blog generation stages for a client.
type Pipeline struct {
	text    ai.TextGenerator
	image   ai.ImageGenerator
	topics  *store.TopicStore
	urls    *store.URLStore
	links   *linkcheck.Validator
	wp      *wordpress.Client
	profile *cache.ProfileCache // may be nil
	media   *storage.Client     // may be nil — image rendering then degrades
}

// New creates a blog pipeline. profile and media may be nil; the pipeline
// then skips caching and image persistence respectively.
func New(
	text ai.TextGenerator,
	image ai.ImageGenerator,
	topics *store.TopicStore,
	urls *store.URLStore,
	links *linkcheck.Validator,
	wp *wordpress.Client,
	profile *cache.ProfileCache,
	media *storage.Client,
) *Pipeline {
	return &Pipeline{
		text:    text,
		image:   image,
		topics:  topics,
		urls:    urls,
		links:   links,
		wp:      wp,
		profile: profile,
		media:   media,
	}
}

// DiscoverTopic finds one current, industry-relevant topic for the client
// using search-grounded generation. Any AI failure surfaces as a discovery
// failure; there is no retry.
func (p *Pipeline) DiscoverTopic(ctx context.Context, client *models.Client) (*TopicResult, error) {
	recent, err := p.topics.ListRecentByClient(client.ID, recentTopicLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent topics: %w", err)
	}

	text, sources, err := p.text.GenerateGrounded(ctx,
		topicSystemPrompt(), topicUserPrompt(client, recent))
	if err != nil {
		return nil, fmt.Errorf("topic discovery: %w", err)
	}

	topic := cleanTopicLine(text)
	if topic == "" {
		return nil, fmt.Errorf("topic discovery: empty topic returned")
	}

	return &TopicResult{Topic: topic, Sources: sources}, nil
}

// PlanStrategy produces the title/angle/keywords plan for a topic. The
// keyword count must land in [5, 7]; anything else is a generation failure,
// never silently patched.
func (p *Pipeline) PlanStrategy(ctx context.Context, client *models.Client, topic string) (*PlanResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errMissing("topic")
	}

	raw, err := p.text.GenerateJSON(ctx,
		planSystemPrompt(), planUserPrompt(client, topic), planSchema)
	if err != nil {
		return nil, fmt.Errorf("strategy planning: %w", err)
	}

	var plan PlanResult
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("strategy planning: decode response: %w", err)
	}
	if plan.Title == "" || plan.Angle == "" {
		return nil, fmt.Errorf("strategy planning: incomplete plan returned")
	}
	if n := len(plan.Keywords); n < 5 || n > 7 {
		return nil, fmt.Errorf("strategy planning: got %d keywords, expected 5-7", n)
	}

	return &plan, nil
}

// GenerateOutline produces the article outline plus word-count and SEO
// heuristics. All inputs are required.
func (p *Pipeline) GenerateOutline(ctx context.Context, client *models.Client, topic, title, angle string, keywords []string) (*OutlineResult, error) {
	switch {
	case strings.TrimSpace(topic) == "":
		return nil, errMissing("topic")
	case strings.TrimSpace(title) == "":
		return nil, errMissing("title")
	case strings.TrimSpace(angle) == "":
		return nil, errMissing("angle")
	case len(keywords) == 0:
		return nil, errMissing("keywords")
	}

	raw, err := p.text.GenerateJSON(ctx,
		outlineSystemPrompt(), outlineUserPrompt(client, topic, title, angle, keywords), outlineSchema)
	if err != nil {
		return nil, fmt.Errorf("outline generation: %w", err)
	}

	var outline OutlineResult
	if err := json.Unmarshal(raw, &outline); err != nil {
		return nil, fmt.Errorf("outline generation: decode response: %w", err)
	}
	if outline.Outline == "" {
		return nil, fmt.Errorf("outline generation: empty outline returned")
	}
	if outline.SEOScore < 0 || outline.SEOScore > 100 {
		return nil, fmt.Errorf("outline generation: seo score %d out of range", outline.SEOScore)
	}

	return &outline, nil
}

// GenerateContent produces the full HTML article. Internal links come only
// from the client's discovered URLs; external references only from the
// industry allow-list, each verified reachable before the content is
// accepted. Fewer than two valid external links rejects the result.
func (p *Pipeline) GenerateContent(ctx context.Context, client *models.Client, in ContentInput) (*ContentResult, error) {
	switch {
	case strings.TrimSpace(in.Topic) == "":
		return nil, errMissing("topic")
	case strings.TrimSpace(in.Title) == "":
		return nil, errMissing("title")
	case strings.TrimSpace(in.Angle) == "":
		return nil, errMissing("angle")
	case len(in.Keywords) == 0:
		return nil, errMissing("keywords")
	case strings.TrimSpace(in.Outline) == "":
		return nil, errMissing("outline")
	}

	internal, err := p.internalLinks(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("load internal links: %w", err)
	}
	allowed := linkcheck.AllowedLinks(client.Industry)

	raw, err := p.text.GenerateJSON(ctx,
		contentSystemPrompt(), contentUserPrompt(client, in, internal, allowed), contentSchema)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	var content ContentResult
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("content generation: decode response: %w", err)
	}
	if content.HTML == "" {
		return nil, fmt.Errorf("content generation: empty body returned")
	}
	if n := len(content.FAQs); n < 3 || n > 5 {
		return nil, fmt.Errorf("content generation: got %d FAQs, expected 3-5", n)
	}
	if len(content.MetaDescription) > 160 {
		return nil, fmt.Errorf("content generation: meta description exceeds 160 characters")
	}

	content.HTML = sanitizeHTML(content.HTML)

	external, err := p.links.ValidateContent(ctx, content.HTML, client.Industry)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}
	content.ExternalLinks = external

	return &content, nil
}

// GenerateImages produces the featured-image description and up to three
// per-heading illustration descriptions. When object storage and the image
// model are available, the featured description is also rendered and
// uploaded; any failure there degrades to description-only. Callers must
// treat a stage error as "no image", never as a pipeline failure.
func (p *Pipeline) GenerateImages(ctx context.Context, title string, headings []string) (*ImageResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errMissing("title")
	}

	raw, err := p.text.GenerateJSON(ctx,
		imageSystemPrompt(), imageUserPrompt(title, headings), imageSchema)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}

	var result ImageResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("image generation: decode response: %w", err)
	}
	if result.FeaturedDescription == "" {
		return nil, fmt.Errorf("image generation: empty featured description")
	}
	if len(result.SectionDescriptions) > 3 {
		result.SectionDescriptions = result.SectionDescriptions[:3]
	}

	// Best effort: render and persist the featured image. Failure here
	// leaves FeaturedURL nil, which is a valid result.
	if p.image != nil && p.media != nil {
		if url, err := p.renderFeatured(ctx, result.FeaturedDescription); err != nil {
			slog.Warn("featured image render failed", "error", err)
		} else {
			result.FeaturedURL = &url
		}
	}

	return &result, nil
}

// renderFeatured renders the featured description with the image model and
// uploads the bytes to object storage.
func (p *Pipeline) renderFeatured(ctx context.Context, description string) (string, error) {
	imgBytes, contentType, err := p.image.GenerateImage(ctx, description)
	if err != nil {
		return "", err
	}
	return p.media.UploadImage(ctx, imgBytes, contentType)
}

// Publish creates a draft post on the client's WordPress site and records
// the topic as used. Missing credentials reject the call before any
// outbound request — and before any UsedTopic row is written.
func (p *Pipeline) Publish(ctx context.Context, client *models.Client, in PublishInput) (*wordpress.PublishResult, error) {
	if !client.HasPublishingCredentials() {
		return nil, errMissing("publishing credentials")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errMissing("title")
	}
	if strings.TrimSpace(in.HTML) == "" {
		return nil, errMissing("content")
	}

	result, err := p.wp.CreateDraft(ctx, wordpress.Credentials{
		SiteURL:     client.WPSiteURL,
		Username:    client.WPUsername,
		AppPassword: client.WPAppPassword,
	}, wordpress.Post{
		Title:           in.Title,
		Content:         in.HTML,
		MetaDescription: in.MetaDescription,
		Tags:            in.Tags,
		Categories:      in.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	if in.Topic != "" {
		if _, err := p.topics.Create(client.ID, in.Topic); err != nil {
			// The draft exists; losing the topic record only weakens
			// duplicate avoidance on the next discovery run.
			slog.Warn("record used topic failed", "client_id", client.ID, "error", err)
		}
	}

	return result, nil
}

// internalLinks loads the client's discovered URLs, cache first.
func (p *Pipeline) internalLinks(ctx context.Context, client *models.Client) ([]models.DiscoveredURL, error) {
	if p.profile != nil {
		if urls, ok := p.profile.GetLinks(ctx, client.ID); ok {
			return urls, nil
		}
	}

	urls, err := p.urls.ListByClient(client.ID)
	if err != nil {
		return nil, err
	}

	if p.profile != nil {
		p.profile.SetLinks(ctx, client.ID, urls)
	}
	return urls, nil
}

// cleanTopicLine strips quotes, list markers, and surrounding whitespace
// from the model's single-line topic.
func cleanTopicLine(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i != -1 {
		line = strings.TrimSpace(line[:i])
	}
	line = strings.Trim(line, `"'`)
	line = strings.TrimLeft(line, "-*0123456789. ")
	return strings.TrimSpace(line)
}

// sectionHeadings extracts h2 headings from an article body, used to drive
// per-section illustration descriptions in Lucky mode.
func sectionHeadings(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var headings []string
	doc.Find("h2").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}
