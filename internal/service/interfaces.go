// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-portal-identity/models"
)

// SessionManager owns the registry, the durable session and the audit log
// and serializes every mutation of them.
type SessionManager interface {
	// Start seeds the registry if needed, runs one reconciliation to
	// completion and then restores the durable session.
	Start(ctx context.Context) error

	Login(ctx context.Context, username, password string) (models.Session, error)
	Logout(ctx context.Context) error
	GetSession(ctx context.Context) (models.Session, bool)

	// Register creates an administrative account, logs it in and mirrors
	// the credential in the background.
	Register(ctx context.Context, username, password, fullName string) (models.Session, error)

	Reconcile(ctx context.Context) (models.ReconcileResult, error)
	State() models.SessionState

	// Wait blocks until background mirror writes have finished.
	Wait()
}

// Reconciler merges the remote credential mirror into the registry.
type Reconciler interface {
	// Reconcile never fails because of the mirror. The returned error
	// reports local persistence failures only.
	Reconcile(ctx context.Context) (models.ReconcileResult, error)
}

// AuditLog is the bounded, newest-first audit trail.
type AuditLog interface {
	Append(ctx context.Context, username, event string, status models.LogStatus) (models.LogEntry, error)
	List(ctx context.Context) ([]models.LogEntry, error)
	Clear(ctx context.Context) error

	// Wait blocks until background sink deliveries have finished.
	Wait()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ReconcileJob periodically reconciles the registry in the background.
type ReconcileJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
