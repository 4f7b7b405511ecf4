// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the three documents that make up the durable local state.
const (
	DocumentUsers    = "users"
	DocumentSession  = "session"
	DocumentAuditLog = "audit_log"
)

// loadJSON decodes the document stored under key into dst.
//
// found is false for an absent document. A body that does not decode
// returns an error wrapping [ErrCorruptDocument].
func loadJSON(ctx context.Context, docs DocumentStore, key string, dst any) (found bool, err error) {
	body, err := docs.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %q: %w", key, err)
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return true, fmt.Errorf("%w: %q: %v", ErrCorruptDocument, key, err)
	}

	return true, nil
}

func saveJSON(ctx context.Context, docs DocumentStore, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	if err = docs.Save(ctx, key, body); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	return nil
}
