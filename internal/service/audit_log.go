// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

const defaultSinkTimeout = 5 * time.Second

type auditLog struct {
	store store.AuditLogStore
	// sink is nil when remote delivery is disabled.
	sink        adapter.AuditSinkAdapter
	sinkTimeout time.Duration

	ids     utils.IDGenerator
	now     func() time.Time
	metrics *metrics.Metrics

	mu sync.Mutex
	wg sync.WaitGroup

	logger *logger.Logger
}

// NewAuditLog builds the audit log. sink may be nil.
func NewAuditLog(logs store.AuditLogStore, sink adapter.AuditSinkAdapter, sinkTimeout time.Duration, ids utils.IDGenerator, m *metrics.Metrics, logger *logger.Logger) AuditLog {
	if sinkTimeout <= 0 {
		sinkTimeout = defaultSinkTimeout
	}

	return &auditLog{
		store:       logs,
		sink:        sink,
		sinkTimeout: sinkTimeout,
		ids:         ids,
		now:         time.Now,
		metrics:     m,
		logger:      logger,
	}
}

// Append records an event at the head of the log and drops whatever falls
// past [models.AuditLogCapacity]. The entry is also pushed to the sink in
// the background, independently of local persistence.
func (a *auditLog) Append(ctx context.Context, username, event string, status models.LogStatus) (models.LogEntry, error) {
	entry := models.LogEntry{
		ID:        a.ids.Generate(),
		Timestamp: a.now().UTC(),
		Username:  username,
		Event:     event,
		Status:    status,
	}

	a.deliver(ctx, entry)

	a.mu.Lock()
	defer a.mu.Unlock()

	entries, err := a.store.List(ctx)
	if err != nil {
		return entry, fmt.Errorf("load audit log: %w", err)
	}

	next := make([]models.LogEntry, 0, min(len(entries)+1, models.AuditLogCapacity))
	next = append(next, entry)
	for _, e := range entries {
		if len(next) == models.AuditLogCapacity {
			break
		}
		next = append(next, e)
	}

	if err = a.store.ReplaceAll(ctx, next); err != nil {
		return entry, fmt.Errorf("persist audit log: %w", err)
	}

	return entry, nil
}

func (a *auditLog) List(ctx context.Context) ([]models.LogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.store.List(ctx)
}

func (a *auditLog) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.store.Clear(ctx)
}

func (a *auditLog) Wait() {
	a.wg.Wait()
}

func (a *auditLog) deliver(ctx context.Context, entry models.LogEntry) {
	if a.sink == nil {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.sinkTimeout)
		defer cancel()

		if err := a.sink.Deliver(ctx, entry); err != nil {
			a.logger.Warn().Err(err).
				Str("func", "*auditLog.deliver").
				Str("entry_id", entry.ID).
				Msg("audit sink delivery failed")
			a.metrics.IncAuditDelivery(metrics.OutcomeFailure)
			return
		}
		a.metrics.IncAuditDelivery(metrics.OutcomeSuccess)
	}()
}
