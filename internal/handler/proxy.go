package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"telesocial-proxy-go/internal/config"
	"telesocial-proxy-go/internal/model"
	"telesocial-proxy-go/internal/service"
)

// ProxyHandler forwards /api/proxy requests to the upstream API.
type ProxyHandler struct {
	service *service.ProxyService
	cfg     *config.Config
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, cfg *config.Config, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		cfg:     cfg,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle proxies the request to the upstream API and relays the buffered
// response with the upstream's status code and content headers.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()

	pr := &model.ProxyRequest{
		Ctx:       req.Context(),
		TargetURL: c.QueryParam("url"),
	}

	resp, err := h.service.Forward(pr)
	if err != nil {
		return h.mapError(c, err)
	}

	if resp.ContentDisposition != "" {
		c.Response().Header().Set(echo.HeaderContentDisposition, resp.ContentDisposition)
	}

	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

// mapError translates a Forward failure into the HTTP error contract: 400 for
// a missing target URL, the upstream's own status code for a non-2xx reply,
// 502 when the upstream could not be reached, and 500 for anything else.
// Every error body is JSON so callers can always parse it.
func (h *ProxyHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("proxy error",
		"err", err,
		"path", c.Request().URL.Path,
	)

	if errors.Is(err, service.ErrMissingURL) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "The 'url' query parameter is required.",
		})
	}

	var statusErr *service.StatusError
	if errors.As(err, &statusErr) {
		return c.JSON(statusErr.StatusCode, map[string]string{
			"error": fmt.Sprintf("Error from target API (%s): %s", h.cfg.Upstream.BaseURL, statusErr.Body),
		})
	}

	// All transport failures from http.Client arrive as *url.Error; errors
	// that implement net.Error or an unexpected EOF mean the body was cut off
	// mid-read. Either way the upstream did not deliver a usable response.
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": fmt.Sprintf("Could not connect to the target API (%s): %s", h.cfg.Upstream.BaseURL, unwrapTransport(err)),
		})
	}

	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": fmt.Sprintf("An unexpected internal server error occurred: %s", err),
	})
}

// unwrapTransport strips the service wrapping from a transport error so the
// client sees the cause ("dial tcp ...") rather than internal call context.
func unwrapTransport(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Error()
	}
	return err.Error()
}
