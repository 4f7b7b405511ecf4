// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCloudFullName is used when a username yields no name segments.
const DefaultCloudFullName = "Cloud Admin"

// FullNameFromUsername derives a display name from a login such as
// "jane.doe" or "john_smith-jr": the username is split on '.', '_' and '-',
// empty segments are dropped and each segment gets an upper-case first
// letter.
func FullNameFromUsername(username string) string {
	segments := strings.FieldsFunc(username, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		r, size := utf8.DecodeRuneInString(s)
		parts = append(parts, string(unicode.ToUpper(r))+s[size:])
	}

	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		return DefaultCloudFullName
	}

	return name
}
