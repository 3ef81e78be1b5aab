package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Package storage provides the persisted key-value store the gateway reads its
// bearer token from.

// TokenKey is the key the dashboard bearer token is stored under.
const TokenKey = "medipoint_token"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small persisted string key-value store.
type Store interface {
	Close() error
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error               { return nil }
func (noopStore) Get(string) (string, error) { return "", ErrNotFound }
func (noopStore) Put(string, string) error   { return nil }
func (noopStore) Delete(string) error        { return nil }
