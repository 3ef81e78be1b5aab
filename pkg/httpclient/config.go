package httpclient

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when no base address override is configured.
	DefaultBaseURL = "https://uie47061-medipoint.hf.space"
	// DefaultTimeoutMs bounds every request issued by the client.
	DefaultTimeoutMs = 10000

	contentTypeJSON = "application/json"
)

// Config describes how the shared client talks to the remote service.
type Config struct {
	BaseURL        string            `json:"base_url"`
	TimeoutMs      int               `json:"timeout_ms"`
	DefaultHeaders map[string]string `json:"default_headers"`
}

// DefaultConfig returns the fallback configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutMs:      DefaultTimeoutMs,
		DefaultHeaders: map[string]string{"Content-Type": contentTypeJSON},
	}
}

// Normalize fills unset fields with defaults. Caller headers are merged over the
// default Content-Type header.
func (c Config) Normalize() Config {
	out := Config{
		BaseURL:   strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"),
		TimeoutMs: c.TimeoutMs,
	}
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.TimeoutMs <= 0 {
		out.TimeoutMs = DefaultTimeoutMs
	}

	out.DefaultHeaders = map[string]string{"Content-Type": contentTypeJSON}
	for k, v := range c.DefaultHeaders {
		key := http.CanonicalHeaderKey(strings.TrimSpace(k))
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out.DefaultHeaders[key] = val
	}
	return out
}

// Timeout returns the configured timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
