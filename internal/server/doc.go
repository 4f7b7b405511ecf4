// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the portal's HTTP API.
//
// A server serves until its context is cancelled and then shuts down
// gracefully, waiting for in-flight requests up to a fixed deadline. Signal
// handling belongs to the caller.
package server
