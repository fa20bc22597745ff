package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/RouteAudit/internal/store"
)

// WithRequestMetadata adds IP and User-Agent to context for run history.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return store.WithClient(ctx, store.Client{
		Source:    "http",
		IP:        clientIP(r),
		UserAgent: r.Header.Get("User-Agent"),
	})
}

// clientIP returns the request's client address without the port.
// RemoteAddr has already been rewritten by TrustedRealIP for proxied requests.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
