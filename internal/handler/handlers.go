// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers exposed by the portal.
package handler

import (
	stdhttp "net/http"

	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/handler/http"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the handlers enabled by cfg. metrics may be nil, in
// which case /metrics is not served.
func NewHandlers(services *service.Services, metrics stdhttp.Handler, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, metrics, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
