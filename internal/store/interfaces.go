// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-portal-identity/models"
)

// DocumentStore persists whole JSON documents addressed by key. Every write
// replaces the previous body; there is no partial-update protocol.
type DocumentStore interface {
	// Load returns the stored body, or [ErrDocumentNotFound].
	Load(ctx context.Context, key string) ([]byte, error)
	// Save creates or replaces the document.
	Save(ctx context.Context, key string, body []byte) error
	// Delete removes the document. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// UserRegistry is the durable set of user records keyed by username.
// Membership is additive-only.
type UserRegistry interface {
	// Initialize seeds the default accounts when the registry is empty.
	Initialize(ctx context.Context) error
	// Find returns the record for username or [ErrUserNotFound].
	Find(ctx context.Context, username string) (models.User, error)
	// Insert adds user or fails with [ErrDuplicateUsername].
	Insert(ctx context.Context, user models.User) error
	// UpdatePassword overwrites the stored hash. Unknown usernames are a no-op.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	// All returns every record in insertion order.
	All(ctx context.Context) ([]models.User, error)
	// ReplaceAll persists users as the complete registry in one write.
	ReplaceAll(ctx context.Context, users []models.User) error
}

// SessionStore holds the single durable session.
type SessionStore interface {
	// Get returns the stored session. ok is false when none exists. A
	// document that cannot be decoded yields an error wrapping
	// [ErrCorruptDocument].
	Get(ctx context.Context) (session models.Session, ok bool, err error)
	Put(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
}

// AuditLogStore persists the audit log sequence, newest first.
type AuditLogStore interface {
	List(ctx context.Context) ([]models.LogEntry, error)
	ReplaceAll(ctx context.Context, entries []models.LogEntry) error
	Clear(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
