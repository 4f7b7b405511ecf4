// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http exposes the session manager and the audit log as a small
// JSON API for the portal front-end.
//
// Every request passes through panic recovery, trace-id propagation and
// access logging before it reaches a handler. Service errors are turned
// into status codes by statusFromError.
package http
