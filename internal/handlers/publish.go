// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"postforge/internal/pipeline"
	"postforge/internal/wordpress"
)

// PublishWordPress creates a draft post on the client's WordPress site.
func (a *API) PublishWordPress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID        string   `json:"client_id"`
		Topic           string   `json:"topic"`
		Title           string   `json:"title"`
		Content         string   `json:"content"`
		MetaDescription string   `json:"meta_description"`
		FeaturedURL     *string  `json:"featured_url"`
		Tags            []string `json:"tags"`
		Categories      []string `json:"categories"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	result, err := a.blog.Publish(r.Context(), client, pipeline.PublishInput{
		Topic:           req.Topic,
		Title:           req.Title,
		HTML:            req.Content,
		MetaDescription: req.MetaDescription,
		FeaturedURL:     req.FeaturedURL,
		Tags:            req.Tags,
		Categories:      req.Categories,
	})
	if err != nil {
		writeFailure(w, "publish failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TestWordPress probes the client's publishing credentials against the
// current-user endpoint.
func (a *API) TestWordPress(w http.ResponseWriter, r *http.Request) {
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
	if !client.HasPublishingCredentials() {
		writeError(w, http.StatusBadRequest, "missing publishing credentials", "")
		return
	}

	name, err := a.wp.TestConnection(r.Context(), wordpress.Credentials{
		SiteURL:     client.WPSiteURL,
		Username:    client.WPUsername,
		AppPassword: client.WPAppPassword,
	})
	if err != nil {
		writeFailure(w, "wordpress connection test failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"connected": true, "user": name})
}
