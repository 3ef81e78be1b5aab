package httpclient

import (
	"context"
	"encoding/json"
	"net/url"
)

// Client abstracts the remote API transport so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// TokenProvider returns the bearer token to attach to an outgoing request.
// The second value reports whether a token is present.
type TokenProvider func() (string, bool)

// Logger defines the logging surface the transport relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) ErrorObj(string, string, interface{}) {}
