// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run starts serving requests and blocks until ctx is cancelled and the
	// server has shut down, or until serving fails.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server. It is called by Run on
	// cancellation and is safe to call directly.
	Shutdown(ctx context.Context) error
}
