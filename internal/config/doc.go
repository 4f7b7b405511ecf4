// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the portal identity service.
//
// Configuration is assembled from environment variables, command-line
// flags, an optional JSON file and built-in defaults, in that priority
// order. The entry point is [GetStructuredConfig].
package config
