// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps *resty.Client so adapters share one construction path.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with the given timeout. A non-empty apiKey
// is sent on every request both as the "apikey" header and as a bearer
// token, which is what PostgREST-style gateways expect.
func NewHTTPClient(timeout time.Duration, apiKey string) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if apiKey != "" {
		client.SetHeader("apikey", apiKey).SetAuthToken(apiKey)
	}

	return &HTTPClient{Client: client}
}
