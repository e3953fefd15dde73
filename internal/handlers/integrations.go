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

// SubAccountCreate stores or replaces the scheduling-vendor credential for
// a client and location. Replacing reactivates the row.
func (a *API) SubAccountCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID    string `json:"client_id"`
		LocationID  string `json:"location_id"`
		AccessToken string `json:"access_token"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.LocationID) == "" {
		writeError(w, http.StatusBadRequest, "location_id is required", "")
		return
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		writeError(w, http.StatusBadRequest, "access_token is required", "")
		return
	}

	client := a.loadClient(w, r, req.ClientID)
	if client == nil {
		return
	}

	saved, err := a.subAccounts.Upsert(&models.SubAccount{
		ClientID:    client.ID,
		LocationID:  req.LocationID,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save sub account failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// SubAccountsList returns a client's stored sub-accounts, newest first.
func (a *API) SubAccountsList(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}

	accounts, err := a.subAccounts.ListByClient(client.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list sub accounts failed", err.Error())
		return
	}
	if accounts == nil {
		accounts = []models.SubAccount{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

// SubAccountDeactivate marks one of the client's sub-accounts inactive,
// keeping its history. The social pipeline then falls back to drafts.
func (a *API) SubAccountDeactivate(w http.ResponseWriter, r *http.Request) {
	client := a.urlParamClient(w, r)
	if client == nil {
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub account id", err.Error())
		return
	}

	// Only the client's own rows may be deactivated.
	accounts, err := a.subAccounts.ListByClient(client.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load sub accounts failed", err.Error())
		return
	}
	owned := false
	for _, acc := range accounts {
		if acc.ID == accountID {
			owned = true
			break
		}
	}
	if !owned {
		writeError(w, http.StatusNotFound, "sub account not found", "")
		return
	}

	if err := a.subAccounts.Deactivate(accountID); err != nil {
		writeError(w, http.StatusInternalServerError, "deactivate sub account failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// TestGHLConnection verifies a scheduling credential by listing the social
// accounts connected at its location. The credential comes either from the
// request body or from the client's active sub-account.
func (a *API) TestGHLConnection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID    string `json:"client_id"`
		LocationID  string `json:"location_id"`
		AccessToken string `json:"access_token"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	token, location := req.AccessToken, req.LocationID
	if token == "" || location == "" {
		client := a.loadClient(w, r, req.ClientID)
		if client == nil {
			return
		}
		account, err := a.subAccounts.ActiveByClient(client.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "load sub account failed", err.Error())
			return
		}
		if account == nil {
			writeError(w, http.StatusBadRequest, "no active sub account", "")
			return
		}
		token, location = account.AccessToken, account.LocationID
	}

	count, err := a.scheduler.TestConnection(r.Context(), token, location)
	if err != nil {
		writeFailure(w, "scheduling connection test failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"connected": true, "accounts": count})
}
