// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// geminiSuccessBody builds a JSON body matching the generateContent response
// format with a single candidate containing the given text.
func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestGeminiGenerate_Success(t *testing.T) {
	want := "Hello from Gemini"
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody(want))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "test-key", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	got, err := c.Generate(context.Background(), "You are helpful.", "Say hello")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestGeminiGenerate_VerifiesRequestShape(t *testing.T) {
	var capturedPath string
	var capturedHeaders http.Header
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedHeaders = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(geminiSuccessBody("ok"))
	}))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "test-key-9", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	_, err := c.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if capturedPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("request path: got %q", capturedPath)
	}
	if key := capturedHeaders.Get("x-goog-api-key"); key != "test-key-9" {
		t.Errorf("x-goog-api-key header: got %q, want %q", key, "test-key-9")
	}

	var reqBody geminiRequest
	if err := json.Unmarshal(capturedBody, &reqBody); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if reqBody.SystemInstruction == nil || reqBody.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Errorf("system instruction: got %+v", reqBody.SystemInstruction)
	}
	if len(reqBody.Contents) != 1 || reqBody.Contents[0].Parts[0].Text != "user prompt" {
		t.Errorf("contents: got %+v", reqBody.Contents)
	}
	if len(reqBody.Tools) != 0 {
		t.Errorf("plain Generate must not send tools, got %+v", reqBody.Tools)
	}
}

func TestGeminiGenerateGrounded_SendsSearchToolAndReturnsSources(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		resp := geminiResponse{
			Candidates: []geminiCandidate{{
				Content: geminiContent{Parts: []geminiPart{{Text: "Roofing trend headline"}}},
				GroundingMetadata: &geminiGroundingMetadata{
					GroundingChunks: []geminiGroundingChunk{
						{Web: &geminiWebChunk{URI: "https://example.com/news", Title: "News"}},
						{Web: nil},
					},
				},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	text, sources, err := c.GenerateGrounded(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateGrounded: unexpected error: %v", err)
	}
	if text != "Roofing trend headline" {
		t.Errorf("text: got %q", text)
	}
	if len(sources) != 1 {
		t.Fatalf("sources: got %d, want 1 (nil web chunks must be skipped)", len(sources))
	}
	if sources[0].URL != "https://example.com/news" || sources[0].Title != "News" {
		t.Errorf("source: got %+v", sources[0])
	}

	if !strings.Contains(string(capturedBody), "google_search") {
		t.Errorf("request must enable the google_search tool, body: %s", capturedBody)
	}
}

func TestGeminiGenerateJSON_Success(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiSuccessBody(`{"title":"T","angle":"A"}`))
	}))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	schema := map[string]any{"type": "OBJECT"}
	raw, err := c.GenerateJSON(context.Background(), "sys", "user", schema)
	if err != nil {
		t.Fatalf("GenerateJSON: unexpected error: %v", err)
	}

	var decoded struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if decoded.Title != "T" {
		t.Errorf("title: got %q", decoded.Title)
	}

	if !strings.Contains(string(capturedBody), `"responseMimeType":"application/json"`) {
		t.Errorf("request must constrain the response mime type, body: %s", capturedBody)
	}
	if !strings.Contains(string(capturedBody), `"responseSchema"`) {
		t.Errorf("request must carry the response schema, body: %s", capturedBody)
	}
}

func TestGeminiGenerateJSON_RejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody("not json at all"))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	_, err := c.GenerateJSON(context.Background(), "sys", "user", nil)
	if err == nil {
		t.Fatal("GenerateJSON: expected error for non-JSON response")
	}
}

func TestGeminiGenerate_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"error":"quota"}`))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	_, err := c.Generate(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Generate: expected error for HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code, got: %v", err)
	}
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"candidates":[]}`))
	defer srv.Close()

	c := NewGemini(Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	_, err := c.Generate(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Generate: expected error for empty candidates")
	}
}
