// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var ErrInvalidDocumentKey = errors.New("document key must be a plain file name")

// fileDocumentStore keeps one "<key>.json" file per document in dir.
// Saves go through a temp file and a rename so a crash never leaves a
// half-written document behind.
type fileDocumentStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileDocumentStore(dir string) (DocumentStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrUnsupportedDSN)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}

	return &fileDocumentStore{dir: dir}, nil
}

func (s *fileDocumentStore) Load(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}

	return data, nil
}

func (s *fileDocumentStore) Save(_ context.Context, key string, body []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write document file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync document file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close document file: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}

	return nil
}

func (s *fileDocumentStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}

	return nil
}

func (s *fileDocumentStore) Close() error {
	return nil
}

func (s *fileDocumentStore) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyDocumentKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidDocumentKey
	}

	return filepath.Join(s.dir, key+".json"), nil
}
