// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the PostForge API.
// Handlers are grouped by concern (clients, generation, publishing, social,
// integrations, diagnostics) and receive their dependencies through the API
// struct. Each route validates its inputs, loads the client row, invokes
// exactly one pipeline stage or composite, and shapes the response.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"postforge/internal/cache"
	"postforge/internal/ghl"
	"postforge/internal/models"
	"postforge/internal/pipeline"
	"postforge/internal/sitemap"
	"postforge/internal/social"
	"postforge/internal/store"
	"postforge/internal/wordpress"
)

// API groups all HTTP handlers and their dependencies.
type API struct {
	clients     *store.ClientStore
	urls        *store.URLStore
	socialPosts *store.SocialPostStore
	subAccounts *store.SubAccountStore

	blog   *pipeline.Pipeline
	social *social.Pipeline

	wp        *wordpress.Client
	scheduler *ghl.Client

	fetcher *sitemap.Fetcher
	crawler *sitemap.Crawler

	profile *cache.ProfileCache // may be nil
}

// New creates the API handler group. profile may be nil; client lookups
// then always hit the database.
func New(
	clients *store.ClientStore,
	urls *store.URLStore,
	socialPosts *store.SocialPostStore,
	subAccounts *store.SubAccountStore,
	blog *pipeline.Pipeline,
	socialPipeline *social.Pipeline,
	wp *wordpress.Client,
	scheduler *ghl.Client,
	fetcher *sitemap.Fetcher,
	crawler *sitemap.Crawler,
	profile *cache.ProfileCache,
) *API {
	return &API{
		clients:     clients,
		urls:        urls,
		socialPosts: socialPosts,
		subAccounts: subAccounts,
		blog:        blog,
		social:      socialPipeline,
		wp:          wp,
		scheduler:   scheduler,
		fetcher:     fetcher,
		crawler:     crawler,
		profile:     profile,
	}
}

// Health is the liveness probe.
func (a *API) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadClient resolves a client id string to a row, cache first. Writes the
// appropriate error response and returns nil when the id is malformed or
// unknown.
func (a *API) loadClient(w http.ResponseWriter, r *http.Request, idStr string) *models.Client {
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return nil
	}

	if a.profile != nil {
		if c, ok := a.profile.GetClient(r.Context(), id); ok {
			return c
		}
	}

	client, err := a.clients.FindByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load client failed", err.Error())
		return nil
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "client not found", "")
		return nil
	}

	if a.profile != nil {
		a.profile.SetClient(r.Context(), client)
	}
	return client
}

// urlParamClient loads the client addressed by the {clientID} URL parameter.
func (a *API) urlParamClient(w http.ResponseWriter, r *http.Request) *models.Client {
	return a.loadClient(w, r, chi.URLParam(r, "clientID"))
}
