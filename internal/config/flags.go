// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a config layer.
//
// Flags:
//
//	-a              HTTP API address in format [host]:[port]
//	-d              storage DSN
//	-c/-config      json file path with configs
//	-log-level      zerolog level
//	-mirror-url     credential mirror endpoint
//	-mirror-key     credential mirror API key
//	-sink-url       audit sink endpoint
//	-request-timeout inbound request timeout (e.g. "30s")
//	-reconcile-interval periodic reconciliation interval (e.g. "5m")
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var logLevel string
	var mirrorURL, mirrorKey string
	var sinkURL string
	var requestTimeout time.Duration
	var reconcileInterval time.Duration

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Storage DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&mirrorURL, "mirror-url", "", "Credential mirror URL")
	fs.StringVar(&mirrorKey, "mirror-key", "", "Credential mirror API key")
	fs.StringVar(&sinkURL, "sink-url", "", "Audit sink URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Reconcile interval (e.g., 5m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App:     App{LogLevel: logLevel},
		Storage: Storage{DSN: databaseDSN},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mirror:       Remote{URL: mirrorURL, APIKey: mirrorKey},
		AuditSink:    Remote{URL: sinkURL},
		Workers:      Workers{ReconcileInterval: reconcileInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The port must be positive and the host must be
// "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
