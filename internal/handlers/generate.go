// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"postforge/internal/pipeline"
)

// GenerateTopic runs topic discovery for a client.
func (a *API) GenerateTopic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.DiscoverTopic(r.Context(), client)
	if err != nil {
		writeFailure(w, "topic discovery failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GeneratePlan runs strategy planning for a topic.
func (a *API) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
		Topic    string `json:"topic"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.PlanStrategy(r.Context(), client, req.Topic)
	if err != nil {
		writeFailure(w, "strategy planning failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateOutline runs outline generation.
func (a *API) GenerateOutline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string   `json:"client_id"`
		Topic    string   `json:"topic"`
		Title    string   `json:"title"`
		Angle    string   `json:"angle"`
		Keywords []string `json:"keywords"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.GenerateOutline(r.Context(), client, req.Topic, req.Title, req.Angle, req.Keywords)
	if err != nil {
		writeFailure(w, "outline generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateContent runs full content generation including external-link
// validation.
func (a *API) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string   `json:"client_id"`
		Topic    string   `json:"topic"`
		Title    string   `json:"title"`
		Angle    string   `json:"angle"`
		Keywords []string `json:"keywords"`
		Outline  string   `json:"outline"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.GenerateContent(r.Context(), client, pipeline.ContentInput{
		Topic:    req.Topic,
		Title:    req.Title,
		Angle:    req.Angle,
		Keywords: req.Keywords,
		Outline:  req.Outline,
	})
	if err != nil {
		writeFailure(w, "content generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateImages runs the image stage on its own. Unlike the composites,
// a direct invocation surfaces image errors to the caller.
func (a *API) GenerateImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string   `json:"title"`
		Headings []string `json:"headings"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required", "")
		return
	}

	result, err := a.blog.GenerateImages(r.Context(), req.Title, req.Headings)
	if err != nil {
		writeFailure(w, "image generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateCompleteBlog runs stages topic through images and returns the
// assembled article for review without publishing.
func (a *API) GenerateCompleteBlog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.Complete(r.Context(), client)
	if err != nil {
		writeFailure(w, "blog generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateLuckyBlog runs the fully automated pipeline ending in a draft
// publish.
func (a *API) GenerateLuckyBlog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.Lucky(r.Context(), client)
	if err != nil {
		writeFailure(w, "lucky blog run failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
