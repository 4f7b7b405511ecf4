// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the composition root of the portal identity service.
//
// It builds the stores, outbound adapters, services and HTTP server from a
// [config.StructuredConfig] and runs them as one process lifecycle: startup
// reconciliation and session restore, the API server and the periodic
// reconcile job, then a drain of background writes before the stores close.
package app
