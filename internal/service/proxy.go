// Package service implements the core proxy forwarding logic.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"telesocial-proxy-go/internal/client"
	"telesocial-proxy-go/internal/config"
	"telesocial-proxy-go/internal/model"
)

// ErrMissingURL is returned when a proxy request carries no target URL.
var ErrMissingURL = errors.New("the 'url' query parameter is required")

// defaultContentType is assumed when the upstream response has no
// Content-Type header.
const defaultContentType = "application/octet-stream"

// StatusError reports a non-2xx upstream reply. It carries the upstream's
// exact status code and the response body as text so the caller can relay
// both.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// ProxyService handles the forwarding logic for proxy requests.
type ProxyService struct {
	client *client.TeleSocialClient
	cfg    *config.Config
	logger *slog.Logger
}

// NewProxyService creates a ProxyService. The configured upstream base URL
// must parse; everything else about it is the config package's concern.
func NewProxyService(c *client.TeleSocialClient, cfg *config.Config, logger *slog.Logger) (*ProxyService, error) {
	if _, err := url.Parse(cfg.Upstream.BaseURL); err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}

	return &ProxyService{
		client: c,
		cfg:    cfg,
		logger: logger.With("component", "proxy_service"),
	}, nil
}

// Forward sends a single GET for pr to the upstream API and returns the
// curated response. The target URL is required but deliberately not validated
// beyond presence: a malformed value is rejected by the outbound client or by
// the upstream itself, and that rejection is relayed like any other failure.
//
// Failures come in three kinds: ErrMissingURL for an absent target,
// *StatusError for a non-2xx upstream reply, and a wrapped transport error
// when the upstream could not be reached at all. None of them are retried.
func (s *ProxyService) Forward(pr *model.ProxyRequest) (*model.ProxyResponse, error) {
	if pr.TargetURL == "" {
		return nil, ErrMissingURL
	}

	upstreamURL := s.buildUpstreamURL(pr.TargetURL)
	s.logger.Info("proxying request", "upstream_url", upstreamURL)

	resp, err := s.client.Get(pr.Ctx, upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return s.curateResponse(resp), nil
}

// buildUpstreamURL embeds target as the single query parameter of the
// configured base URL. QueryEscape leaves no reserved character unescaped, so
// nothing inside target can introduce extra parameters or fragments into the
// outbound URL.
func (s *ProxyService) buildUpstreamURL(target string) string {
	return s.cfg.Upstream.BaseURL + "?url=" + url.QueryEscape(target)
}

// curateResponse narrows the upstream header set down to the content headers
// a client needs. Status code and body pass through untouched.
func (s *ProxyService) curateResponse(up *model.UpstreamResponse) *model.ProxyResponse {
	contentType := up.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &model.ProxyResponse{
		StatusCode:         up.StatusCode,
		ContentType:        contentType,
		ContentDisposition: up.Header.Get("Content-Disposition"),
		Body:               up.Body,
	}
}
