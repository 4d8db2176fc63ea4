// Package client provides the upstream HTTP client for the tele-social API.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"telesocial-proxy-go/internal/config"
	"telesocial-proxy-go/internal/metrics"
	"telesocial-proxy-go/internal/model"
)

const userAgent = "telesocial-proxy/1.0"

// TeleSocialClient issues GET requests to the upstream tele-social API.
type TeleSocialClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewTeleSocialClient creates a TeleSocialClient with connection reuse and a
// bounded total timeout; redirects are followed automatically (http.Client
// default, up to 10). The client holds no cookie jar, so nothing carries over
// between unrelated requests on a reused connection.
// The metrics parameter is optional; pass nil to disable upstream metrics
// recording.
func NewTeleSocialClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *TeleSocialClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &TeleSocialClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "telesocial_client"),
		metrics: m,
	}
}

// Get fetches url and buffers the whole response body in memory. The provided
// context controls the lifetime of the upstream request: when it is canceled
// (e.g. the inbound client disconnects), the upstream request is aborted.
func (c *TeleSocialClient) Get(ctx context.Context, url string) (*model.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("upstream request", "host", req.URL.Host)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamDuration.Observe(duration)
		}
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		c.metrics.UpstreamDuration.Observe(duration)
		c.metrics.UpstreamResponses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	return &model.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
