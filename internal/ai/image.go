// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiImageClient implements ImageGenerator using Gemini's native
// generateContent API with responseModalities set to IMAGE.
type GeminiImageClient struct {
	config Config
	client *http.Client
}

// NewGeminiImage creates a new Gemini image client. Image models are slower
// than text models, so the HTTP timeout is longer.
func NewGeminiImage(cfg Config) *GeminiImageClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiImageClient{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateImage creates an image from the prompt. Returns image bytes and
// the content type.
func (c *GeminiImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	if c.config.ImageModel == "" {
		return nil, "", fmt.Errorf("gemini image: image generation requires GEMINI_MODEL_IMAGE to be set")
	}

	body := geminiImageRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: "Generate an image of: " + prompt}}},
		},
		GenerationConfig: geminiImageConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("gemini image marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		c.config.BaseURL, c.config.ImageModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("gemini image request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("gemini image http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("gemini image read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("gemini image API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiImageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, "", fmt.Errorf("gemini image unmarshal: %w", err)
	}

	// Extract the image data from the response parts.
	for _, cand := range result.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				imgBytes, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, "", fmt.Errorf("gemini image decode base64: %w", err)
				}
				contentType := part.InlineData.MimeType
				if contentType == "" {
					contentType = "image/png"
				}
				return imgBytes, contentType, nil
			}
		}
	}

	return nil, "", fmt.Errorf("gemini image: no image data in response")
}

// --- Gemini native image generation types ---

type geminiImageRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig geminiImageConfig `json:"generationConfig"`
}

type geminiImageConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiImagePart struct {
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Text       string            `json:"text,omitempty"`
}

type geminiImageContent struct {
	Parts []geminiImagePart `json:"parts"`
}

type geminiImageCandidate struct {
	Content geminiImageContent `json:"content"`
}

type geminiImageResponse struct {
	Candidates []geminiImageCandidate `json:"candidates"`
}
