// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "context"

// Runner defines the lifecycle contract of a runnable application.
type Runner interface {
	// Run starts the application and blocks until ctx is cancelled or a
	// component fails.
	Run(ctx context.Context) error
}
