// Package boltdb implements client-side session storage on top of bbolt.
package boltdb

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketAuth = []byte("auth")

// Storage represents bbolt storage implementation
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the bbolt database at path and prepares buckets
func New(path string) (*Storage, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}
