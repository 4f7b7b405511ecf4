// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type remoteJSON struct {
	URL            string   `json:"url"`
	APIKey         string   `json:"api_key"`
	RequestTimeout Duration `json:"request_timeout"`
}

func (r remoteJSON) toRemote() Remote {
	return Remote{URL: r.URL, APIKey: r.APIKey, RequestTimeout: time.Duration(r.RequestTimeout)}
}

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version         string `json:"version"`
		LogLevel        string `json:"log_level"`
		BcryptCost      int    `json:"bcrypt_cost"`
		MirrorUserAgent string `json:"mirror_user_agent"`
		AppContext      string `json:"app_context"`
	} `json:"app,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mirror    remoteJSON `json:"mirror,omitempty"`
	AuditSink remoteJSON `json:"audit_sink,omitempty"`

	Workers struct {
		ReconcileInterval Duration `json:"reconcile_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:         jsonCfg.App.Version,
			LogLevel:        jsonCfg.App.LogLevel,
			BcryptCost:      jsonCfg.App.BcryptCost,
			MirrorUserAgent: jsonCfg.App.MirrorUserAgent,
			AppContext:      jsonCfg.App.AppContext,
		},
		Storage: Storage{DSN: jsonCfg.Storage.DSN},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mirror:    jsonCfg.Mirror.toRemote(),
		AuditSink: jsonCfg.AuditSink.toRemote(),
		Workers: Workers{
			ReconcileInterval: time.Duration(jsonCfg.Workers.ReconcileInterval),
		},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h"
// or from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
