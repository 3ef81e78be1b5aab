package storage

import (
	"errors"
	"strings"

	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
)

// Logger defines the logging surface the token provider relies on.
type Logger interface {
	WarnObj(msg, key string, obj interface{})
}

// TokenProvider reads TokenKey from store on every call, so a token written by
// another process is picked up by the next request. Lookup failures are
// reported as "no token" and never block the request.
func TokenProvider(store Store, log Logger) httpclient.TokenProvider {
	return func() (string, bool) {
		if store == nil {
			return "", false
		}
		token, err := store.Get(TokenKey)
		if err != nil {
			if !errors.Is(err, ErrNotFound) && log != nil {
				log.WarnObj("token lookup failed", "token_store_error", map[string]any{
					"key":   TokenKey,
					"error": err.Error(),
				})
			}
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}
}
