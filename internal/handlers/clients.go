// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"postforge/internal/models"
)

// clientRequest carries the writable client profile fields.
type clientRequest struct {
	Name            string  `json:"name"`
	Industry        string  `json:"industry"`
	WebsiteURL      string  `json:"website_url"`
	SitemapURL      *string `json:"sitemap_url"`
	BrandVoice      string  `json:"brand_voice"`
	UniqueValueProp string  `json:"unique_value_prop"`
	ContentStrategy string  `json:"content_strategy"`
	WPSiteURL       string  `json:"wp_site_url"`
	WPUsername      string  `json:"wp_username"`
	WPAppPassword   string  `json:"wp_app_password"`
	GBPLocationID   *string `json:"gbp_location_id"`
}

// validate checks the mandatory profile fields and returns the first
// problem found, or empty.
func (req *clientRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(req.Industry) == "" {
		return "industry is required"
	}
	if strings.TrimSpace(req.WebsiteURL) == "" {
		return "website_url is required"
	}
	return ""
}

// apply copies the request fields onto a client row.
func (req *clientRequest) apply(c *models.Client) {
	c.Name = strings.TrimSpace(req.Name)
	c.Industry = strings.TrimSpace(req.Industry)
	c.WebsiteURL = strings.TrimSpace(req.WebsiteURL)
	c.SitemapURL = req.SitemapURL
	c.BrandVoice = req.BrandVoice
	c.UniqueValueProp = req.UniqueValueProp
	c.ContentStrategy = req.ContentStrategy
	c.WPSiteURL = strings.TrimSpace(req.WPSiteURL)
	c.WPUsername = req.WPUsername
	c.WPAppPassword = req.WPAppPassword
	c.GBPLocationID = req.GBPLocationID
}

// ClientsList returns every client profile.
func (a *API) ClientsList(w http.ResponseWriter, _ *http.Request) {
	clients, err := a.clients.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list clients failed", err.Error())
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// ClientGet returns one client by id.
func (a *API) ClientGet(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// ClientCreate creates a client profile.
func (a *API) ClientCreate(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg, "")
		return
	}

	c := &models.Client{}
	req.apply(c)

	created, err := a.clients.Create(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create client failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ClientUpdate replaces a client's writable fields and invalidates its
// cached profile.
func (a *API) ClientUpdate(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}

	var req clientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg, "")
		return
	}

	req.apply(client)
	if err := a.clients.Update(client); err != nil {
		writeError(w, http.StatusInternalServerError, "update client failed", err.Error())
		return
	}

	if a.profile != nil {
		a.profile.Invalidate(r.Context(), client.ID)
	}
	writeJSON(w, http.StatusOK, client)
}

// ClientDelete removes a client; owned rows cascade at the storage layer.
func (a *API) ClientDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	if err := a.clients.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete client failed", err.Error())
		return
	}

	if a.profile != nil {
		a.profile.Invalidate(r.Context(), id)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
