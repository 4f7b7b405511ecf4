// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
)

// Adapters are the outbound clients the services depend on. AuditSink may
// be nil.
type Adapters struct {
	Mirror    adapter.MirrorAdapter
	AuditSink adapter.AuditSinkAdapter
}

type Services struct {
	SessionManager SessionManager
	AuditLog       AuditLog
	ReconcileJob   ReconcileJob
	AppInfo        AppInfoService
}

func NewServices(storages *store.Storages, adapters Adapters, hasher crypto.PasswordHasher, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	auditLog := NewAuditLog(storages.AuditLog, adapters.AuditSink, cfg.AuditSink.RequestTimeout, ids, m, logger)
	reconciler := NewReconciler(storages.Users, adapters.Mirror, hasher, m, logger)

	manager := NewSessionManager(SessionManagerDeps{
		Users:         storages.Users,
		Sessions:      storages.Session,
		Reconciler:    reconciler,
		AuditLog:      auditLog,
		Mirror:        adapters.Mirror,
		Hasher:        hasher,
		IDs:           ids,
		Metrics:       m,
		UserAgent:     cfg.App.UserAgent(),
		MirrorTimeout: cfg.Mirror.RequestTimeout,
	}, logger)

	return &Services{
		SessionManager: manager,
		AuditLog:       auditLog,
		ReconcileJob:   NewReconcileJob(manager, logger),
		AppInfo:        appInfo,
	}, nil
}
