// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/models"
)

type sessionStore struct {
	docs   DocumentStore
	logger *logger.Logger
}

func NewSessionStore(docs DocumentStore, logger *logger.Logger) SessionStore {
	return &sessionStore{docs: docs, logger: logger}
}

// Get returns an error wrapping [ErrCorruptDocument] when the stored session
// cannot be decoded, so the caller can discard it.
func (s *sessionStore) Get(ctx context.Context) (models.Session, bool, error) {
	var session models.Session
	found, err := loadJSON(ctx, s.docs, DocumentSession, &session)
	if err != nil {
		return models.Session{}, false, err
	}

	if !found || session.Username == "" {
		return models.Session{}, false, nil
	}

	return session, true, nil
}

func (s *sessionStore) Put(ctx context.Context, session models.Session) error {
	return saveJSON(ctx, s.docs, DocumentSession, session)
}

func (s *sessionStore) Clear(ctx context.Context) error {
	return s.docs.Delete(ctx, DocumentSession)
}
