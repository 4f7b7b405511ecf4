// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-portal-identity/internal/utils"
)

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.SessionManager.Reconcile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
