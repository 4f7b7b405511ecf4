// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/migrations"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSQLStore(t *testing.T, dialect string) (*sqlDocumentStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if dialect == migrations.DialectPostgres {
		classifier = NewPostgresErrorClassifier()
	}

	s := NewSQLDocumentStore(&DB{
		DB:                 db,
		dialect:            dialect,
		errorClassificator: classifier,
		logger:             logger.Nop(),
	}).(*sqlDocumentStore)
	s.now = func() time.Time { return fixedNow }
	s.retryDelay = 0

	return s, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLDocumentStore_Load(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM documents WHERE key = $1")).
		WithArgs(DocumentUsers).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`[{"username":"admin"}]`))

	body, err := s.Load(context.Background(), DocumentUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"username":"admin"}]`, string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_LoadNotFound(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectQuery("SELECT body FROM documents").
		WithArgs(DocumentSession).
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	_, err := s.Load(context.Background(), DocumentSession)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SaveUpsert(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (key,body,updated_at) VALUES ($1,$2,$3) ON CONFLICT (key) DO UPDATE")).
		WithArgs(DocumentAuditLog, `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), DocumentAuditLog, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SaveRetriesTransientError(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), DocumentUsers, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SaveGivesUpAfterMaxAttempts(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	for i := 0; i < defaultMaxAttempts; i++ {
		mock.ExpectExec("INSERT INTO documents").
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	err := s.Save(context.Background(), DocumentUsers, []byte(`[]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SaveNonRetryable(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	err := s.Save(context.Background(), DocumentUsers, nil)
	require.Error(t, err)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, pgerrcode.NotNullViolation, pgErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_DeleteSQLitePlaceholders(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectSQLite)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE key = ?")).
		WithArgs(DocumentSession).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), DocumentSession))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_DeletePostgresPlaceholders(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE key = $1")).
		WithArgs(DocumentSession).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), DocumentSession))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SQLitePlaceholders(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectSQLite)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (key,body,updated_at) VALUES (?,?,?) ON CONFLICT (key) DO UPDATE")).
		WithArgs(DocumentUsers, `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM documents WHERE key = ?")).
		WithArgs(DocumentUsers).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`[]`))

	require.NoError(t, s.Save(ctx, DocumentUsers, []byte(`[]`)))
	body, err := s.Load(ctx, DocumentUsers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_SQLiteBusyIsRetried(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectSQLite)

	mock.ExpectQuery("SELECT body FROM documents").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectQuery("SELECT body FROM documents").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`{}`))

	body, err := s.Load(context.Background(), DocumentSession)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_EmptyKey(t *testing.T) {
	s, mock := newTestSQLStore(t, migrations.DialectSQLite)
	ctx := context.Background()

	_, err := s.Load(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyDocumentKey)
	assert.ErrorIs(t, s.Save(ctx, "", nil), ErrEmptyDocumentKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyDocumentKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorClassifiers(t *testing.T) {
	pg := NewPostgresErrorClassifier()
	assert.Equal(t, Retryable, pg.Classify(pgError(pgerrcode.DeadlockDetected)))
	assert.Equal(t, Retryable, pg.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, NonRetryable, pg.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, pg.Classify(errors.New("boom")))
	assert.Equal(t, NonRetryable, pg.Classify(nil))

	lite := NewSQLiteErrorClassifier()
	assert.Equal(t, Retryable, lite.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, lite.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, lite.Classify(errors.New("boom")))
}
