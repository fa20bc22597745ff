package store

import "context"

// Client describes who requested an analysis.
type Client struct {
	Source    string // "cli" or "http"
	IP        string
	UserAgent string
}

type clientKey struct{}

// WithClient attaches client details to ctx for SaveRun.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFromContext returns the client stored in ctx. Source defaults to "cli".
func ClientFromContext(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	if c.Source == "" {
		c.Source = "cli"
	}
	return c
}
