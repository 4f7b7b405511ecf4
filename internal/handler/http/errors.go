// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMalformedBody is reported when a request body is not the expected
	// JSON object.
	ErrMalformedBody = errors.New("malformed request body")

	ErrNoSession = errors.New("no active session")
)
