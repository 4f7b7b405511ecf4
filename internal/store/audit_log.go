// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/models"
)

type auditLogStore struct {
	docs   DocumentStore
	logger *logger.Logger
}

func NewAuditLogStore(docs DocumentStore, logger *logger.Logger) AuditLogStore {
	return &auditLogStore{docs: docs, logger: logger}
}

func (s *auditLogStore) List(ctx context.Context) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	if _, err := loadJSON(ctx, s.docs, DocumentAuditLog, &entries); err != nil {
		if errors.Is(err, ErrCorruptDocument) {
			s.logger.Warn().Err(err).Str("func", "*auditLogStore.List").Msg("audit log unreadable, treating as empty")
			return []models.LogEntry{}, nil
		}
		return nil, err
	}

	if entries == nil {
		entries = []models.LogEntry{}
	}

	return entries, nil
}

func (s *auditLogStore) ReplaceAll(ctx context.Context, entries []models.LogEntry) error {
	if entries == nil {
		entries = []models.LogEntry{}
	}

	return saveJSON(ctx, s.docs, DocumentAuditLog, entries)
}

func (s *auditLogStore) Clear(ctx context.Context) error {
	return s.docs.Delete(ctx, DocumentAuditLog)
}
