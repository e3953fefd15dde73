// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline sequences the blog content-generation stages: topic
// discovery, strategy planning, outline, full content, images, and publish.
// Each stage is independently invocable; Lucky mode composes all of them
// with a single concurrent image branch. AI responses are decoded into the
// tagged result types below and rejected at the boundary — nothing
// downstream trusts a raw vendor payload.
package pipeline

import (
	"fmt"

	"postforge/internal/ai"
	"postforge/internal/wordpress"
)

// ValidationError marks a caller/input fault: a missing or empty required
// field. Handlers map it to a 4xx response; it is never retried or defaulted.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// errMissing builds the standard validation error for an absent input.
func errMissing(field string) error {
	return &ValidationError{Field: field}
}

// TopicResult is the outcome of topic discovery: one current headline plus
// the grounding citations used to find it.
type TopicResult struct {
	Topic   string      `json:"topic"`
	Sources []ai.Source `json:"sources"`
}

// PlanResult is the validated strategy for a topic.
type PlanResult struct {
	Title    string   `json:"title"`
	Angle    string   `json:"angle"`
	Keywords []string `json:"keywords"`
}

// OutlineResult is the article outline with its heuristics.
type OutlineResult struct {
	Outline            string `json:"outline"`
	EstimatedWordCount int    `json:"estimated_word_count"`
	SEOScore           int    `json:"seo_score"`
}

// FAQ is one question/answer pair appended to generated content.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContentResult is the accepted full article. ExternalLinks lists the
// allow-listed references that passed the liveness probe.
type ContentResult struct {
	HTML            string   `json:"html"`
	WordCount       int      `json:"word_count"`
	MetaDescription string   `json:"meta_description"`
	FAQs            []FAQ    `json:"faqs"`
	ExternalLinks   []string `json:"external_links"`
}

// ContentInput carries the required inputs for full content generation.
type ContentInput struct {
	Topic    string
	Title    string
	Angle    string
	Keywords []string
	Outline  string
}

// ImageResult is the outcome of the image stage: a featured-image
// description (optionally rendered and uploaded, yielding a URL) and up to
// three per-heading illustration descriptions. Absence of a URL is a valid,
// publishable state.
type ImageResult struct {
	FeaturedDescription string   `json:"featured_description"`
	FeaturedURL         *string  `json:"featured_url,omitempty"`
	SectionDescriptions []string `json:"section_descriptions"`
}

// PublishInput carries the publish-stage payload.
type PublishInput struct {
	Topic           string
	Title           string
	HTML            string
	MetaDescription string
	FeaturedURL     *string
	Tags            []string
	Categories      []string
}

// LuckyResult aggregates every stage of a fully automated run.
type LuckyResult struct {
	Topic   *TopicResult             `json:"topic"`
	Plan    *PlanResult              `json:"plan"`
	Outline *OutlineResult           `json:"outline"`
	Content *ContentResult           `json:"content"`
	Image   *ImageResult             `json:"image,omitempty"`
	Publish *wordpress.PublishResult `json:"publish"`
}
