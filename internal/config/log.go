// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"

	"github.com/rs/zerolog"
)

const redacted = "[REDACTED]"

// MarshalZerologObject logs the configuration with API keys and DSN
// passwords masked.
func (c StructuredConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Interface("app", c.App).
		Str("storage_dsn", redactDSN(c.Storage.DSN)).
		Interface("server", c.Server).
		Object("mirror", c.Mirror).
		Object("audit_sink", c.AuditSink).
		Interface("workers", c.Workers).
		Str("config_file", c.JSONFilePath)
}

func (r Remote) MarshalZerologObject(e *zerolog.Event) {
	e.Str("url", r.URL).
		Str("api_key", redact(r.APIKey)).
		Dur("request_timeout", r.RequestTimeout)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

// redactDSN masks the password of URL-style DSNs. Plain file paths are
// returned unchanged.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}

	return u.Redacted()
}
