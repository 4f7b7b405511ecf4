// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/handler"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/server"
	"github.com/MKhiriev/go-portal-identity/internal/service"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/internal/workers"
	"github.com/MKhiriev/go-portal-identity/models"
)

var _ Runner = (*App)(nil)

type App struct {
	cfg       *config.StructuredConfig
	buildInfo models.AppBuildInfo

	storages *store.Storages
	services *service.Services
	server   server.Server

	logger *logger.Logger
}

// NewApp opens the configured stores and wires every component on top of
// them. Nothing is started until Run.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	hasher := crypto.NewPasswordHasher(cfg.App.BcryptCost)

	storages, err := store.NewStorages(ctx, cfg.Storage, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app, err := newApp(cfg, buildInfo, storages, hasher, logger)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	return app, nil
}

func newApp(cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, storages *store.Storages, hasher crypto.PasswordHasher, logger *logger.Logger) (*App, error) {
	adapters, err := newAdapters(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	services, err := service.NewServices(storages, adapters, hasher, m, *cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, m.Handler(), cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		storages:  storages,
		services:  services,
		server:    srv,
		logger:    logger,
	}, nil
}

// newAdapters builds the outbound clients. A disabled mirror is replaced by
// a stub that reports [adapter.ErrNotConfigured]; a disabled audit sink is
// left nil.
func newAdapters(cfg *config.StructuredConfig, logger *logger.Logger) (service.Adapters, error) {
	var adapters service.Adapters

	mirror, err := adapter.NewHTTPMirrorAdapter(cfg.Mirror, cfg.App, logger)
	switch {
	case errors.Is(err, adapter.ErrNotConfigured):
		logger.Info().Msg("credential mirror disabled")
		adapters.Mirror = adapter.NewDisabledMirror()
	case err != nil:
		return adapters, fmt.Errorf("create mirror adapter: %w", err)
	default:
		adapters.Mirror = mirror
	}

	sink, err := adapter.NewHTTPAuditSinkAdapter(cfg.AuditSink)
	switch {
	case errors.Is(err, adapter.ErrNotConfigured):
		logger.Info().Msg("audit sink disabled")
	case err != nil:
		return adapters, fmt.Errorf("create audit sink adapter: %w", err)
	default:
		adapters.AuditSink = sink
	}

	return adapters, nil
}

// Run restores the session, then serves the API and runs the reconcile job
// until ctx is cancelled. Background mirror writes and sink deliveries are
// drained before the stores are closed.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().
		Str("build_version", a.buildInfo.BuildVersion()).
		Str("build_date", a.buildInfo.BuildDate()).
		Str("build_commit", a.buildInfo.BuildCommit()).
		Str("app_version", a.cfg.App.Version).
		Msg("starting portal identity service")

	defer a.close()

	if err := a.services.SessionManager.Start(ctx); err != nil {
		return fmt.Errorf("start session manager: %w", err)
	}

	group := workers.New(a.server)
	if interval := a.cfg.Workers.ReconcileInterval; interval > 0 {
		group.Add(workers.Func(func(ctx context.Context) error {
			a.services.ReconcileJob.Start(ctx, interval)
			<-ctx.Done()
			a.services.ReconcileJob.Stop()
			return nil
		}))
	}

	return group.Run(ctx)
}

func (a *App) close() {
	a.services.SessionManager.Wait()
	a.services.AuditLog.Wait()

	if err := a.storages.Close(); err != nil {
		a.logger.Error().Err(err).Msg("close storages")
	}
	a.logger.Info().Msg("portal identity service stopped")
}
