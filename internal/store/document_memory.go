// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"
)

// memoryDocumentStore is an in-process [DocumentStore]. Nothing survives a
// restart; it backs the ":memory:" DSN and tests.
type memoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{docs: make(map[string][]byte)}
}

func (s *memoryDocumentStore) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyDocumentKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	return append([]byte(nil), body...), nil
}

func (s *memoryDocumentStore) Save(_ context.Context, key string, body []byte) error {
	if key == "" {
		return ErrEmptyDocumentKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = append([]byte(nil), body...)
	return nil
}

func (s *memoryDocumentStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyDocumentKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}

func (s *memoryDocumentStore) Close() error {
	return nil
}
