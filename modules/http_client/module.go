// Package http_client provides a shareable HTTP client module, so that
// several declared modules can reuse one TCP connection pool.
package http_client

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// NewFactory builds the HttpClient factory. Params: `timeout` (duration
// string, default 30s) and `insecure_skip_verify` (bool). The module exports
// a configured *http.Client.
func NewFactory(params map[string]cty.Value) registry.Factory {
	timeout := registry.DurationParam(params, "timeout", 30*time.Second)
	skipVerify := registry.BoolParam(params, "insecure_skip_verify", false)

	return func(ctx context.Context, args []any) (any, error) {
		logger := ctxlog.FromContext(ctx).With("module", "http_client")

		client := &http.Client{Timeout: timeout}
		if skipVerify {
			logger.Warn("Skipping TLS certificate verification")
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
			client.Transport = transport
		}

		logger.Debug("HTTP client created.", "timeout", timeout)
		return client, nil
	}
}

// Register registers the factory builder with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("HttpClient", NewFactory)
}
