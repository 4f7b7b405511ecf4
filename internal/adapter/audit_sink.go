// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

type httpAuditSinkAdapter struct {
	client   *utils.HTTPClient
	endpoint string
}

// NewHTTPAuditSinkAdapter builds an [AuditSinkAdapter] posting to cfg.URL.
// It returns [ErrNotConfigured] when cfg has no URL.
func NewHTTPAuditSinkAdapter(cfg config.Remote) (AuditSinkAdapter, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	endpoint, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid audit sink url: %w", err)
	}

	return &httpAuditSinkAdapter{
		client:   utils.NewHTTPClient(cfg.RequestTimeout, cfg.APIKey),
		endpoint: endpoint,
	}, nil
}

func (s *httpAuditSinkAdapter) Deliver(ctx context.Context, entry models.LogEntry) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		Post(s.endpoint)
	if err != nil {
		return mapTransportError("audit sink", err)
	}

	return mapHTTPError(resp)
}
