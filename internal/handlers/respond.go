// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"postforge/internal/pipeline"
	"postforge/internal/store"
)

// errorBody is the uniform error shape for every failed request.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError writes the uniform {error, details} body.
func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// writeFailure maps a pipeline or store error to the right status class:
// caller faults are 4xx, everything else is a dependency failure carried as
// 502 with the upstream error text in details.
func writeFailure(w http.ResponseWriter, msg string, err error) {
	var ve *pipeline.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, msg, ve.Error())
	case errors.Is(err, store.ErrDomainMismatch):
		writeError(w, http.StatusBadRequest, msg, err.Error())
	default:
		writeError(w, http.StatusBadGateway, msg, err.Error())
	}
}

// decodeBody decodes a JSON request body into dst. Returns false after
// writing a 400 when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}
