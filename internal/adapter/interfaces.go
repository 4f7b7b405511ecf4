// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound HTTP clients of the portal: the remote
// credential mirror and the audit sink.
//
// Transport failures are reported as [ErrNetworkUnavailable] and non-2xx
// statuses are mapped by mapHTTPError to sentinel values, so callers can use
// [errors.Is] without knowing about resty.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-portal-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MirrorAdapter talks to the remote append-only credential mirror.
type MirrorAdapter interface {
	// Append creates a mirror record for username. The capture timestamp and
	// the application context tag are stamped by the adapter.
	Append(ctx context.Context, username, passwordHash, userAgent string) error

	// FetchAll returns every mirror record, newest first. On failure it
	// returns an empty slice together with the error.
	FetchAll(ctx context.Context) ([]models.MirroredCredential, error)
}

// AuditSinkAdapter pushes audit entries to a remote collector. Delivery is
// best-effort: the response body is never inspected.
type AuditSinkAdapter interface {
	Deliver(ctx context.Context, entry models.LogEntry) error
}
