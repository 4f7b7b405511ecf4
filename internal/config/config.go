// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the portal identity
// service. It is populated by merging environment variables, command-line
// flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, logging, password
	// hashing cost and the identifiers sent with mirror writes.
	App App `envPrefix:"APP_"`

	// Storage selects the durable document store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP API listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Mirror configures the remote credential mirror. An empty URL disables
	// both mirror writes and reconciliation fetches.
	Mirror Remote `envPrefix:"MIRROR_"`

	// AuditSink configures best-effort remote delivery of audit entries.
	// An empty URL disables delivery.
	AuditSink Remote `envPrefix:"AUDIT_SINK_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is reported by /api/version and embedded in the default
	// mirror user agent.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// BcryptCost is the work factor used when hashing passwords.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// MirrorUserAgent identifies this client in mirror writes. When empty it
	// defaults to "go-portal-identity/<Version>".
	// Env: APP_MIRROR_USER_AGENT
	MirrorUserAgent string `env:"MIRROR_USER_AGENT"`

	// AppContext is the fixed context tag attached to every mirror write.
	// Env: APP_CONTEXT
	AppContext string `env:"CONTEXT"`
}

// UserAgent returns MirrorUserAgent, or "go-portal-identity/<Version>" when
// it is unset.
func (a App) UserAgent() string {
	if a.MirrorUserAgent != "" {
		return a.MirrorUserAgent
	}
	return "go-portal-identity/" + a.Version
}

// Storage holds the document store settings.
type Storage struct {
	// DSN selects the backend:
	//   - "postgres://..." or "postgresql://..." for PostgreSQL;
	//   - "file://<dir>" for one JSON file per document;
	//   - ":memory:" for an in-process store;
	//   - anything else is an SQLite database path.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the HTTP API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Remote describes an outbound HTTP endpoint.
type Remote struct {
	// URL is the full endpoint URL. Empty disables the integration.
	URL string `env:"URL"`

	// APIKey, when set, is sent as "apikey" and "Authorization: Bearer".
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds every outbound request to the endpoint.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Enabled reports whether the endpoint is configured.
func (r Remote) Enabled() bool {
	return r.URL != ""
}

// Workers holds configuration for background jobs.
type Workers struct {
	// ReconcileInterval is how often the mirror is reconciled after startup.
	// Zero disables the periodic job; startup reconciliation always runs.
	// Env: WORKERS_RECONCILE_INTERVAL
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`
}

// Defaults returns the lowest-priority configuration layer.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:    "dev",
			LogLevel:   "info",
			BcryptCost: 10,
			AppContext: "Portal_Enterprise_Signup",
		},
		Storage: Storage{DSN: "portal.db"},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Mirror:    Remote{RequestTimeout: 10 * time.Second},
		AuditSink: Remote{RequestTimeout: 5 * time.Second},
	}
}

// GetStructuredConfig loads, merges and validates the configuration.
//
// Sources are merged with mergo, which only fills fields still zero, so the
// effective priority is:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
