// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides thin clients for the Gemini text-generation and
// image-generation APIs. Each client handles its own HTTP communication
// and response parsing; there is no retry or pooling logic beyond what
// net/http provides.
package ai

import (
	"context"
	"encoding/json"
)

// Source is one grounding citation returned alongside generated text when
// real-time search assistance was enabled.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// TextGenerator is the contract the pipelines depend on for text output.
// Implemented by the Gemini client; test fakes implement it too.
type TextGenerator interface {
	// Generate sends a prompt and returns the generated text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateGrounded enables real-time search grounding and returns the
	// generated text plus any citation sources.
	GenerateGrounded(ctx context.Context, systemPrompt, userPrompt string) (string, []Source, error)

	// GenerateJSON constrains the response to the given JSON schema and
	// returns the raw JSON body. A response that is not valid JSON is an
	// error, never repaired.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema any) (json.RawMessage, error)
}

// ImageGenerator is the contract for image output. Callers treat any error
// as a degraded "no image" result, never as a pipeline failure.
type ImageGenerator interface {
	// GenerateImage returns raw image bytes and their content type.
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// Config holds the credentials and settings for the Gemini clients.
type Config struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}
