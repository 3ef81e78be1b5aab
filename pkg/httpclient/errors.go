package httpclient

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// FallbackErrorMessage is reported when a failed response carries no error.message.
const FallbackErrorMessage = "request failed"

var errMalformedPayload = errors.New("malformed response payload")

// APIError is returned for every failed call: network failures, timeouts,
// non-2xx statuses and malformed payloads alike.
type APIError struct {
	Message    string
	StatusCode int
	Method     string
	Path       string
	Err        error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Detail renders the error with request context for diagnostics.
func (e *APIError) Detail() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

// ErrorMessage extracts body.error.message, falling back to FallbackErrorMessage.
func ErrorMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return FallbackErrorMessage
	}
	res := gjson.GetBytes(body, "error.message")
	if res.Type != gjson.String || res.Str == "" {
		return FallbackErrorMessage
	}
	return res.Str
}
