// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-portal-identity/internal/config"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

// httpMirrorAdapter speaks the PostgREST dialect: list with select/order
// query parameters, create with "Prefer: return=minimal".
type httpMirrorAdapter struct {
	client     *utils.HTTPClient
	endpoint   string
	appContext string
	now        func() time.Time

	logger *logger.Logger
}

// NewHTTPMirrorAdapter builds a [MirrorAdapter] for cfg. It returns
// [ErrNotConfigured] when cfg has no URL.
func NewHTTPMirrorAdapter(cfg config.Remote, appCfg config.App, logger *logger.Logger) (MirrorAdapter, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	endpoint, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror url: %w", err)
	}

	return &httpMirrorAdapter{
		client:     utils.NewHTTPClient(cfg.RequestTimeout, cfg.APIKey),
		endpoint:   endpoint,
		appContext: appCfg.AppContext,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (m *httpMirrorAdapter) Append(ctx context.Context, username, passwordHash, userAgent string) error {
	body := models.MirrorWriteRequest{
		Username:   username,
		Password:   passwordHash,
		CapturedAt: m.now().UTC(),
		UserAgent:  userAgent,
		AppContext: m.appContext,
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(body).
		Post(m.endpoint)
	if err != nil {
		return mapTransportError("mirror append", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("mirror append: %w", err)
	}

	m.logger.Debug().Str("func", "*httpMirrorAdapter.Append").Str("username", username).Msg("credential mirrored")
	return nil
}

func (m *httpMirrorAdapter) FetchAll(ctx context.Context) ([]models.MirroredCredential, error) {
	empty := []models.MirroredCredential{}

	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "captured_at.desc",
		}).
		Get(m.endpoint)
	if err != nil {
		return empty, mapTransportError("mirror fetch", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return empty, fmt.Errorf("mirror fetch: %w", err)
	}

	var records []models.MirroredCredential
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return empty, fmt.Errorf("mirror fetch: %w: %v", ErrMalformedResponse, err)
	}
	if records == nil {
		return empty, nil
	}

	return records, nil
}

// disabledMirror stands in when no mirror URL is configured. Writes fail
// with [ErrNotConfigured]; reads find nothing.
type disabledMirror struct{}

// NewDisabledMirror returns a [MirrorAdapter] that never touches the network.
func NewDisabledMirror() MirrorAdapter {
	return disabledMirror{}
}

func (disabledMirror) Append(context.Context, string, string, string) error {
	return ErrNotConfigured
}

func (disabledMirror) FetchAll(context.Context) ([]models.MirroredCredential, error) {
	return []models.MirroredCredential{}, ErrNotConfigured
}
