package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistence contract shared by the archive and the user
// directory. Implementations are interchangeable; callers only rely on
// Get/Set/Delete semantics and the ErrNotFound sentinel.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
