// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the typed stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrDuplicateUsername is returned by Insert when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUserNotFound is returned by Find for an unknown username.
	ErrUserNotFound = errors.New("user not found")

	// ErrCorruptDocument marks a stored document that cannot be decoded.
	// Typed stores log it and fall back to the empty value.
	ErrCorruptDocument = errors.New("stored document is corrupt")
)

// Document store errors.
var (
	// ErrDocumentNotFound is returned by Load for an absent key.
	ErrDocumentNotFound = errors.New("document not found")

	ErrEmptyDocumentKey = errors.New("document key is empty")

	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to execute statement")

	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)
