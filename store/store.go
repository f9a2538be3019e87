// Package store persists the dashboard document as named blobs.
//
// Two backends are available: a directory of JSON files and a bbolt
// database. Both serialize the read-modify-write cycle of Update.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no blob is stored under a key.
var ErrNotFound = errors.New("blob not found")

// Backend names, as accepted by Open.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// Store holds blobs by key.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Update calls fn with the current blob (nil when there is none) and
	// stores the blob it returns. Concurrent updates are serialized. When fn
	// fails nothing is written and its error is returned.
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
	// Remove deletes the blob stored under key. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open opens the store of the given backend in dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendBolt:
		return NewBoltStore(dir)
	}
	return nil, fmt.Errorf("unknown store backend %q, want %q or %q", backend, BackendFile, BackendBolt)
}
