// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.AuditLog.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) clearLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuditLog.Clear(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
