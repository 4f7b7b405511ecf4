// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/service"
)

func TestNewHandlers(t *testing.T) {
	t.Run("http address creates http handler", func(t *testing.T) {
		handlers, err := NewHandlers(&service.Services{}, nil, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())
		require.NoError(t, err)
		assert.NotNil(t, handlers.HTTP)
	})

	t.Run("no address is an error", func(t *testing.T) {
		handlers, err := NewHandlers(&service.Services{}, nil, config.Server{}, logger.Nop())
		assert.ErrorIs(t, err, errNoHandlersAreCreated)
		assert.Nil(t, handlers)
	})
}
