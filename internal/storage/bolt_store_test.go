package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

type warnRecorder struct {
	warnings int
}

func (w *warnRecorder) WarnObj(string, string, interface{}) { w.warnings++ }

func TestBoltStorePutGetDelete(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "nested", "medipoint.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(TokenKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(TokenKey, "abc"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(TokenKey)
	if err != nil || got != "abc" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := store.Delete(TokenKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(TokenKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(TokenKey); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medipoint.db")

	first, err := NewStore("bbolt", path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := first.Put(TokenKey, "persisted"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewStore("bbolt", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got, err := second.Get(TokenKey); err != nil || got != "persisted" {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestTokenProviderReadsFreshValue(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "medipoint.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	log := &warnRecorder{}
	provider := TokenProvider(store, log)

	if tok, ok := provider(); ok || tok != "" {
		t.Fatalf("expected no token, got %q", tok)
	}

	if err := store.Put(TokenKey, " tok-1 "); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if tok, ok := provider(); !ok || tok != "tok-1" {
		t.Fatalf("expected tok-1, got %q ok=%v", tok, ok)
	}

	if err := store.Put(TokenKey, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := provider(); ok {
		t.Fatalf("empty token must be reported as absent")
	}
	if log.warnings != 0 {
		t.Fatalf("missing token must not be logged as a failure")
	}
}

func TestTokenProviderSwallowsStoreErrors(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "medipoint.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	store.Close()

	log := &warnRecorder{}
	if _, ok := TokenProvider(store, log)(); ok {
		t.Fatalf("closed store must yield no token")
	}
	if log.warnings != 1 {
		t.Fatalf("expected one warning, got %d", log.warnings)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Put(TokenKey, "x"); err != nil {
		t.Fatalf("noop store Put: %v", err)
	}
	if _, ok := TokenProvider(store, nil)(); ok {
		t.Fatalf("noop store must never yield a token")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " "); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
