// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "net/url"

// Role is the portal role assigned to a user. It decides which view
// (administrator or staff) the presentation layer routes the user to.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// DefaultAdminDepartment is the department given to every account created
// through registration or synthesized from the credential mirror.
const DefaultAdminDepartment = "Administration"

// User is a registry record. It is the only type that carries the password
// hash and it must never be handed to rendering code; use [User.Session]
// to obtain the public view.
type User struct {
	// ID is a stable identifier. Seeded accounts use fixed ids, registered
	// accounts a UUID and mirrored accounts "cloud-<remote id>".
	ID string `json:"id"`

	// Username is unique across the registry.
	Username string `json:"username"`

	// Password holds a bcrypt hash, never the plaintext.
	Password string `json:"password"`

	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	Avatar     string `json:"avatar"`
	Department string `json:"department,omitempty"`
}

// Session is the authenticated identity exposed beyond the registry
// boundary: a [User] without its password.
type Session struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	Avatar     string `json:"avatar"`
	Department string `json:"department,omitempty"`
}

// Session strips the password and returns the public view of u.
func (u User) Session() Session {
	return Session{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Role:       u.Role,
		Avatar:     u.Avatar,
		Department: u.Department,
	}
}

// Credentials is the login/registration input accepted from callers.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// AvatarURL returns the deterministic avatar image for seed.
func AvatarURL(seed string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(seed) + "/200"
}
