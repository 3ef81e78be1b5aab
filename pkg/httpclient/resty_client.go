package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface. It is safe
// for concurrent use and is meant to be shared for the life of the process.
type RestyClient struct {
	client *resty.Client
	cfg    Config
	tokens TokenProvider
	log    Logger
}

// Option customizes a RestyClient during construction.
type Option func(*RestyClient)

// WithTokenProvider sets the bearer token source consulted before every request.
func WithTokenProvider(p TokenProvider) Option {
	return func(r *RestyClient) { r.tokens = p }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log Logger) Option {
	return func(r *RestyClient) {
		if log != nil {
			r.log = log
		}
	}
}

// WithHTTPClient swaps the underlying *http.Client (custom transports, tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(r *RestyClient) {
		if hc != nil {
			r.client = resty.NewWithClient(hc)
		}
	}
}

// New creates a RestyClient from cfg. Unset config fields fall back to DefaultConfig.
func New(cfg Config, opts ...Option) *RestyClient {
	r := &RestyClient{
		client: resty.New(),
		cfg:    cfg.Normalize(),
		log:    noopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client.
		SetBaseURL(r.cfg.BaseURL).
		SetTimeout(r.cfg.Timeout()).
		SetHeaders(r.cfg.DefaultHeaders).
		OnBeforeRequest(r.injectToken)
	return r
}

// Config returns the normalized configuration the client was built with.
func (r *RestyClient) Config() Config { return r.cfg }

// injectToken attaches the bearer token when one is available. A missing token
// never fails the request.
func (r *RestyClient) injectToken(_ *resty.Client, req *resty.Request) error {
	if r.tokens == nil {
		return nil
	}
	token, ok := r.tokens()
	if !ok {
		return nil
	}
	if token = strings.TrimSpace(token); token == "" {
		return nil
	}
	req.SetHeader("Authorization", "Bearer "+token)
	return nil
}

// Get performs a GET against path relative to the base URL and returns the response payload.
func (r *RestyClient) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return r.Do(ctx, http.MethodGet, path, query, nil)
}

// Do executes a request and unwraps the response envelope. On success only the
// body is returned; every failure becomes an *APIError after being logged once.
func (r *RestyClient) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	r.log.DebugObj("api request", "api_request", map[string]any{
		"method": method,
		"path":   path,
		"query":  query.Encode(),
	})

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, r.fail(&APIError{
			Message: FallbackErrorMessage,
			Method:  method,
			Path:    path,
			Err:     err,
		})
	}

	payload := resp.Body()
	if !resp.IsSuccess() {
		return nil, r.fail(&APIError{
			Message:    ErrorMessage(payload),
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       path,
		})
	}

	if len(payload) == 0 {
		return nil, nil
	}
	if !json.Valid(payload) {
		return nil, r.fail(&APIError{
			Message:    FallbackErrorMessage,
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       path,
			Err:        errMalformedPayload,
		})
	}

	return json.RawMessage(payload), nil
}

func (r *RestyClient) fail(apiErr *APIError) error {
	fields := map[string]any{
		"method":  apiErr.Method,
		"path":    apiErr.Path,
		"message": apiErr.Message,
	}
	if apiErr.StatusCode > 0 {
		fields["status"] = apiErr.StatusCode
	}
	if apiErr.Err != nil {
		fields["cause"] = apiErr.Err.Error()
	}
	r.log.ErrorObj("api error", "api_error", fields)
	return apiErr
}

var _ Client = (*RestyClient)(nil)
