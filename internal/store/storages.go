// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
)

const memoryDSN = ":memory:"

// Storages groups the durable stores owned by the application root.
type Storages struct {
	Documents DocumentStore
	Users     UserRegistry
	Session   SessionStore
	AuditLog  AuditLogStore
}

// NewStorages opens the document store selected by cfg.DSN and builds the
// typed stores on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, hasher crypto.PasswordHasher, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	docs, err := NewDocumentStore(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, err
	}

	return NewStoragesFrom(docs, hasher, logger), nil
}

func NewStoragesFrom(docs DocumentStore, hasher crypto.PasswordHasher, logger *logger.Logger) *Storages {
	return &Storages{
		Documents: docs,
		Users:     NewUserRegistry(docs, hasher, logger),
		Session:   NewSessionStore(docs, logger),
		AuditLog:  NewAuditLogStore(docs, logger),
	}
}

func (s *Storages) Close() error {
	return s.Documents.Close()
}

// NewDocumentStore picks a backend by DSN:
//   - postgres:// or postgresql:// connects to PostgreSQL and migrates;
//   - file://<dir> keeps one JSON file per document;
//   - ":memory:" keeps documents in process;
//   - anything else is an SQLite database path, migrated on open.
func NewDocumentStore(ctx context.Context, dsn string, logger *logger.Logger) (DocumentStore, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)

	case dsn == memoryDSN:
		return NewMemoryDocumentStore(), nil

	case strings.HasPrefix(dsn, "file://"):
		return NewFileDocumentStore(strings.TrimPrefix(dsn, "file://"))

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLDocumentStore(db), nil

	default:
		db, err := NewConnectSQLite(ctx, dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLDocumentStore(db), nil
	}
}
