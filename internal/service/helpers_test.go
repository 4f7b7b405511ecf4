// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// countingStore is an in-memory document store that counts writes per key.
type countingStore struct {
	store.DocumentStore

	mu    sync.Mutex
	saves map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{DocumentStore: store.NewMemoryDocumentStore(), saves: map[string]int{}}
}

func (c *countingStore) Save(ctx context.Context, key string, body []byte) error {
	c.mu.Lock()
	c.saves[key]++
	c.mu.Unlock()

	return c.DocumentStore.Save(ctx, key, body)
}

func (c *countingStore) savesOf(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.saves[key]
}

func (c *countingStore) raw(t *testing.T, key string) []byte {
	t.Helper()
	body, err := c.Load(context.Background(), key)
	require.NoError(t, err)
	return body
}

func newTestHasher() crypto.PasswordHasher {
	return crypto.NewPasswordHasher(bcrypt.MinCost)
}

func newTestStorages() (*store.Storages, *countingStore, crypto.PasswordHasher) {
	docs := newCountingStore()
	hasher := newTestHasher()
	return store.NewStoragesFrom(docs, hasher, logger.Nop()), docs, hasher
}

func mustHash(t *testing.T, hasher crypto.PasswordHasher, password string) string {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return hash
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
