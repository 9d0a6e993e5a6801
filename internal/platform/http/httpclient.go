// Package http provides the outbound HTTP client shared by external API adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds a client for vendor API calls.
//
// Settings:
//   - Proxy: honours HTTP_PROXY / HTTPS_PROXY
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConnsPerHost: watchlist enrichment fans out to a single vendor host, so the
//     per-host idle pool is sized to the fan-out instead of Go's default of 2
//   - Client.Timeout: whole-request timeout supplied by the caller
//
// http.DefaultClient has no timeout; never use it for vendor calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
