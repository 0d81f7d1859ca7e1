// Package modelsvc implements the outbound HTTP client for the stress
// prediction model service. It is the only component that knows the service's
// wire format; everything upstream sees ports.Predictor.
package modelsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client calls POST {baseURL}/predict with the entry's feature vector and
// normalizes every failure mode — unreachable host, timeout, non-2xx status,
// malformed body — into domain.ErrModelServiceUnavailable. The orchestrator
// never learns which one occurred.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
		logger:     logger,
	}
}

// NewClientWithHTTPClient is intended for tests; it avoids the tuned transport
// by using the given http.Client.
func NewClientWithHTTPClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger zerolog.Logger) *Client {
	c := NewClient(baseURL, timeout, logger)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

type predictResponse struct {
	Prediction     *float64 `json:"prediction"`
	Recommendation string   `json:"recommendation"`
	ModelVersion   string   `json:"model_version"`
}

// Predict performs a single bounded-time call. No retries: a failed attempt is
// terminal for the entry being created.
func (c *Client) Predict(ctx context.Context, features ports.EntryFeatures) (*ports.PredictionResult, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("%w: encode features: %v", domain.ErrModelServiceUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrModelServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.baseURL).Msg("model service request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrModelServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; the body is not trusted.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Warn().Int("status", resp.StatusCode).Msg("model service returned non-success status")
		return nil, fmt.Errorf("%w: status %d", domain.ErrModelServiceUnavailable, resp.StatusCode)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrModelServiceUnavailable, err)
	}
	if pr.Prediction == nil {
		return nil, fmt.Errorf("%w: response missing prediction", domain.ErrModelServiceUnavailable)
	}

	return &ports.PredictionResult{
		Value:          *pr.Prediction,
		Recommendation: pr.Recommendation,
		ModelVersion:   pr.ModelVersion,
	}, nil
}
