// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the portal's long-lived background processes as one
// group: the first worker to fail cancels the rest.
package workers

import "context"

// Worker is a long-lived process. Run blocks until ctx is cancelled or the
// worker fails; returning nil after cancellation is a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
