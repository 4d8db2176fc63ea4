// Package model defines shared types for the proxy.
package model

import (
	"context"
	"net/http"
)

// ProxyRequest represents a client request to be forwarded upstream.
// TargetURL is taken verbatim from the caller; it is percent-encoded before
// being embedded in the upstream query string but never validated as a URL.
type ProxyRequest struct {
	Ctx       context.Context
	TargetURL string
}

// UpstreamResponse is the raw upstream reply with the body fully buffered.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ProxyResponse is the curated reply returned to the client: upstream status
// and body unchanged, headers reduced to the content headers the client needs.
type ProxyResponse struct {
	StatusCode         int
	ContentType        string
	ContentDisposition string
	Body               []byte
}
