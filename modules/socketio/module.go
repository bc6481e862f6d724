// Package socketio provides a connected socket.io client as a module, so the
// rest of the graph can depend on one live connection.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// NewFactory builds the SocketIOClient factory. Params: `url` (required),
// `namespace`, `timeout` (duration string, default 10s) and
// `insecure_skip_verify`. The factory blocks until the connection is
// established and exports the live *socket.Socket; connection failure or
// timeout fails the module, so a later resolve re-attempts the connection.
func NewFactory(params map[string]cty.Value) registry.Factory {
	rawURL := registry.StringParam(params, "url", "")
	namespace := registry.StringParam(params, "namespace", "/")
	timeout := registry.DurationParam(params, "timeout", 10*time.Second)
	skipVerify := registry.BoolParam(params, "insecure_skip_verify", false)

	return func(ctx context.Context, args []any) (any, error) {
		logger := ctxlog.FromContext(ctx).With("module", "socketio", "url", rawURL, "namespace", namespace)
		logger.Debug("Connecting socket.io client")

		if rawURL == "" {
			return nil, fmt.Errorf("socketio module requires a 'url' param")
		}
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL: %w", err)
		}

		baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
		opts := socket.DefaultOptions()
		if parsedURL.Path != "" {
			opts.SetPath(parsedURL.Path)
		}
		if skipVerify {
			logger.Warn("Skipping TLS certificate verification")
			opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		}
		opts.SetTransports(types.NewSet(transports.WebSocket))

		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan error, 1)

		manager := socket.NewManager(baseURL, opts)
		io := manager.Socket(namespace, opts)

		io.On(types.EventName("connect"), func(...any) {
			logger.Info("Successfully connected", "sid", io.Id())
			done <- nil
		})
		io.On(types.EventName("connect_error"), func(errs ...any) {
			if len(errs) > 0 {
				if e, ok := errs[0].(error); ok {
					done <- e
					return
				}
			}
			done <- fmt.Errorf("socket.io connection failed")
		})

		io.Connect()

		select {
		case <-opCtx.Done():
			io.Disconnect()
			return nil, fmt.Errorf("timed out while waiting for initial connection to %s", rawURL)
		case err := <-done:
			if err != nil {
				io.Disconnect()
				return nil, fmt.Errorf("socket.io connection failed: %w", err)
			}
			return io, nil
		}
	}
}

// Register registers the factory builder with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("SocketIOClient", NewFactory)
}
