// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/service"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrMalformedBody: http.StatusBadRequest,
	ErrNoSession:     http.StatusNotFound,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,

	store.ErrDuplicateUsername: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the mapped status. Internal errors are
// logged and their text is not sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
