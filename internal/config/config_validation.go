// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks the merged [StructuredConfig] before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if err := validateRemote(cfg.Mirror); err != nil {
		return fmt.Errorf("%w: mirror: %v", ErrInvalidRemoteConfigs, err)
	}
	if err := validateRemote(cfg.AuditSink); err != nil {
		return fmt.Errorf("%w: audit sink: %v", ErrInvalidRemoteConfigs, err)
	}

	if cfg.Workers.ReconcileInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func validateRemote(r Remote) error {
	if !r.Enabled() {
		return nil
	}

	u, err := url.Parse(r.URL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}
