// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"postforge/internal/models"
)

// SocialCreatePost runs the social post pipeline for a client and topic.
// The response always reports whether a live push succeeded separately from
// whether generation succeeded.
func (a *API) SocialCreatePost(w http.ResponseWriter, r *http.Request) {
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

	result, err := a.social.CreatePost(r.Context(), client, req.Topic)
	if err != nil {
		writeFailure(w, "social post generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SocialPostsList returns a client's social posts, newest first.
func (a *API) SocialPostsList(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}

	posts, err := a.socialPosts.ListByClient(client.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list social posts failed", err.Error())
		return
	}
	if posts == nil {
		posts = []models.SocialPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// SocialPostUpdateStatus transitions one of the client's posts to a new
// lifecycle status, e.g. marking a draft published after a manual post.
func (a *API) SocialPostUpdateStatus(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id", err.Error())
		return
	}

	var req struct {
		Status models.SocialPostStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case models.SocialPostStatusDraft, models.SocialPostStatusScheduled, models.SocialPostStatusPublished:
	default:
		writeError(w, http.StatusBadRequest, "invalid status", string(req.Status))
		return
	}

	if err := a.socialPosts.UpdateStatus(postID, client.ID, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "update post status failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": postID, "status": req.Status})
}
