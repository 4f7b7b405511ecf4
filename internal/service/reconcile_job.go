// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-portal-identity/internal/logger"
)

const defaultReconcileInterval = 5 * time.Minute

type reconcileJob struct {
	manager SessionManager

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewReconcileJob creates a job that calls manager.Reconcile on a ticker.
// The job is idle until Start is called.
func NewReconcileJob(manager SessionManager, logger *logger.Logger) ReconcileJob {
	return &reconcileJob{manager: manager, logger: logger}
}

// Start stops any previously running job, then reconciles every interval
// until ctx is cancelled or Stop is called. A non-positive interval
// defaults to 5 minutes.
func (j *reconcileJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.manager.Reconcile(jobCtx); err != nil {
					j.logger.Error().Err(err).Str("func", "*reconcileJob.Start").Msg("scheduled reconciliation failed")
				}
			}
		}
	}()
}

// Stop cancels the job and blocks until its goroutine has exited. Safe to
// call when the job is not running.
func (j *reconcileJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
