// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/models"
)

func TestAuditLogStore_RoundTrip(t *testing.T) {
	docs := NewMemoryDocumentStore()
	s := NewAuditLogStore(docs, logger.Nop())
	ctx := context.Background()

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	want := []models.LogEntry{
		{ID: "2", Timestamp: ts.Add(time.Second), Username: "admin", Event: models.EventLogout, Status: models.StatusSuccess},
		{ID: "1", Timestamp: ts, Username: "admin", Event: models.EventLogin, Status: models.StatusSuccess},
	}
	require.NoError(t, s.ReplaceAll(ctx, want))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear(ctx))
	got, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAuditLogStore_CorruptDocumentReadsAsEmpty(t *testing.T) {
	docs := NewMemoryDocumentStore()
	s := NewAuditLogStore(docs, logger.Nop())
	ctx := context.Background()

	require.NoError(t, docs.Save(ctx, DocumentAuditLog, []byte(`[{"timestamp":"yesterday"}]`)))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
