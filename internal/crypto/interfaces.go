// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns passwords into storable bcrypt hashes and checks
// candidates against them.
//
// Registry records and mirror writes only ever carry values produced by Hash.
type PasswordHasher interface {
	// Hash returns the bcrypt hash of password. An empty password is
	// rejected with [ErrEmptyPassword].
	Hash(password string) (string, error)

	// Verify returns nil when password matches hash, [ErrPasswordMismatch]
	// when it does not, and a wrapped error when hash is malformed.
	Verify(password, hash string) error

	// IsHash reports whether value looks like a bcrypt hash. Remote records
	// written by older clients may carry plaintext values.
	IsHash(value string) bool
}
