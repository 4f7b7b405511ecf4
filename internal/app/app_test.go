// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/models"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) *config.StructuredConfig {
	cfg := config.Defaults()
	cfg.App.BcryptCost = bcrypt.MinCost
	cfg.Storage.DSN = ":memory:"
	cfg.Server.HTTPAddress = freeAddress(t)
	return cfg
}

func TestNewAdapters(t *testing.T) {
	t.Run("disabled integrations", func(t *testing.T) {
		adapters, err := newAdapters(config.Defaults(), logger.Nop())
		require.NoError(t, err)

		assert.Nil(t, adapters.AuditSink)
		require.NotNil(t, adapters.Mirror)
		_, err = adapters.Mirror.FetchAll(context.Background())
		assert.ErrorIs(t, err, adapter.ErrNotConfigured)
	})

	t.Run("configured integrations", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Mirror.URL = "http://mirror.example/rest/v1/credentials"
		cfg.AuditSink.URL = "http://sink.example/logs"

		adapters, err := newAdapters(cfg, logger.Nop())
		require.NoError(t, err)
		assert.NotNil(t, adapters.Mirror)
		assert.NotNil(t, adapters.AuditSink)
	})
}

func TestNewApp_NoServerAddress(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.HTTPAddress = ""

	_, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunServesUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers.ReconcileInterval = time.Hour
	hasher := crypto.NewPasswordHasher(cfg.App.BcryptCost)
	storages := store.NewStoragesFrom(store.NewMemoryDocumentStore(), hasher, logger.Nop())

	a, err := newApp(cfg, models.NewAppBuildInfo("1.0.0", "today", "abc"), storages, hasher, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	base := "http://" + cfg.Server.HTTPAddress
	require.Eventually(t, func() bool {
		resp, err := http.Post(base+"/api/auth/login", "application/json",
			strings.NewReader(`{"username":"admin","password":"123"}`))
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop after cancellation")
	}
}
