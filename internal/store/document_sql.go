// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/migrations"
)

const (
	documentsTable = "documents"

	defaultMaxAttempts = 3
	defaultRetryDelay  = 50 * time.Millisecond
)

// sqlDocumentStore keeps documents in the "documents" table of SQLite or
// PostgreSQL. Writes are upserts keyed by the document key.
type sqlDocumentStore struct {
	db      *DB
	builder sq.StatementBuilderType
	now     func() time.Time

	maxAttempts int
	retryDelay  time.Duration
}

// NewSQLDocumentStore returns a [DocumentStore] over an already migrated db.
func NewSQLDocumentStore(db *DB) DocumentStore {
	var placeholder sq.PlaceholderFormat = sq.Question
	if db.dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &sqlDocumentStore{
		db:          db,
		builder:     sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

func (s *sqlDocumentStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyDocumentKey
	}

	query, args, err := s.builder.
		Select("body").
		From(documentsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var body string
	err = s.withRetry(ctx, "Load", func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&body)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return []byte(body), nil
}

func (s *sqlDocumentStore) Save(ctx context.Context, key string, body []byte) error {
	if key == "" {
		return ErrEmptyDocumentKey
	}

	query, args, err := s.builder.
		Insert(documentsTable).
		Columns("key", "body", "updated_at").
		Values(key, string(body), s.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, "Save", func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlDocumentStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyDocumentKey
	}

	query, args, err := s.builder.
		Delete(documentsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	err = s.withRetry(ctx, "Delete", func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlDocumentStore) Close() error {
	return s.db.Close()
}

// withRetry runs op until it succeeds, fails with a non-retryable error or
// runs out of attempts.
func (s *sqlDocumentStore) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn()
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if s.db.errorClassificator == nil || s.db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*sqlDocumentStore."+op).
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(s.retryDelay * time.Duration(attempt)):
		}
	}

	return err
}
