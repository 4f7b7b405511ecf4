// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

func decodeCredentials(r *http.Request) (models.Credentials, error) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return models.Credentials{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return creds, nil
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	session, err := h.services.SessionManager.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SessionManager.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.services.SessionManager.GetSession(r.Context())
	if !ok {
		writeServiceError(w, r, ErrNoSession)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	session, err := h.services.SessionManager.Register(r.Context(), creds.Username, creds.Password, creds.FullName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("username", session.Username).Msg("account registered over http")
	utils.WriteJSON(w, session, http.StatusCreated)
}
