// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiClient implements TextGenerator using the Google Gemini REST API
// (POST /v1beta/models/{model}:generateContent).
type GeminiClient struct {
	config Config
	client *http.Client
}

// NewGemini creates a new Gemini text client.
func NewGemini(cfg Config) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiClient{
		config: cfg,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Generate sends a generateContent request and returns the response text.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := c.generate(ctx, geminiRequest{
		SystemInstruction: systemContent(systemPrompt),
		Contents:          userContents(userPrompt),
	})
	if err != nil {
		return "", err
	}
	return candidateText(result)
}

// GenerateGrounded sends a generateContent request with the google_search
// tool enabled and returns the text plus grounding citations.
func (c *GeminiClient) GenerateGrounded(ctx context.Context, systemPrompt, userPrompt string) (string, []Source, error) {
	result, err := c.generate(ctx, geminiRequest{
		SystemInstruction: systemContent(systemPrompt),
		Contents:          userContents(userPrompt),
		Tools:             []geminiTool{{GoogleSearch: &struct{}{}}},
	})
	if err != nil {
		return "", nil, err
	}

	text, err := candidateText(result)
	if err != nil {
		return "", nil, err
	}

	var sources []Source
	if gm := result.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" {
				sources = append(sources, Source{URL: chunk.Web.URI, Title: chunk.Web.Title})
			}
		}
	}
	return text, sources, nil
}

// GenerateJSON constrains the response to the given schema via
// responseMimeType/responseSchema and returns the raw JSON body.
// A body that fails to parse as JSON is returned as an error.
func (c *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema any) (json.RawMessage, error) {
	result, err := c.generate(ctx, geminiRequest{
		SystemInstruction: systemContent(systemPrompt),
		Contents:          userContents(userPrompt),
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, err
	}

	text, err := candidateText(result)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("gemini: response is not valid JSON")
	}
	return json.RawMessage(text), nil
}

// generate issues the HTTP request and decodes the response envelope.
func (c *GeminiClient) generate(ctx context.Context, body geminiRequest) (*geminiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		c.config.BaseURL, c.config.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini unmarshal: %w", err)
	}
	return &result, nil
}

// candidateText extracts the first non-empty text part from the first candidate.
func candidateText(result *geminiResponse) (string, error) {
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("gemini: no text in response")
}

func systemContent(text string) *geminiContent {
	return &geminiContent{Parts: []geminiPart{{Text: text}}}
}

func userContents(text string) []geminiContent {
	return []geminiContent{{Parts: []geminiPart{{Text: text}}}}
}

// --- Gemini API types ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
	ResponseSchema   any    `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiWebChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type geminiGroundingChunk struct {
	Web *geminiWebChunk `json:"web,omitempty"`
}

type geminiGroundingMetadata struct {
	GroundingChunks []geminiGroundingChunk `json:"groundingChunks"`
}

type geminiCandidate struct {
	Content           geminiContent            `json:"content"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
