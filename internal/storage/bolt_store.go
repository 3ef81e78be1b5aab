package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const settingsBucket = "settings"

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the value stored under key or ErrNotFound.
func (b *boltStore) Get(key string) (string, error) {
	if b == nil || b.db == nil {
		return "", ErrNotFound
	}

	var value string
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return fmt.Errorf("settings bucket missing")
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return ErrNotFound
		}
		// raw is only valid inside the transaction
		value = string(raw)
		return nil
	})
	return value, err
}

// Put stores value under key, replacing any previous value.
func (b *boltStore) Put(key, value string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return fmt.Errorf("settings bucket missing")
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (b *boltStore) Delete(key string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return fmt.Errorf("settings bucket missing")
		}
		return bucket.Delete([]byte(key))
	})
}
