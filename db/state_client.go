package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has expired.
var ErrKeyNotFound = errors.New("key not found")

// ErrConflict is returned by Update when concurrent writers kept winning.
var ErrConflict = errors.New("concurrent update conflict")

// UpdateFunc computes the new value of a key from its current one. exists is
// false when the key is missing or expired. Returning an error aborts the
// update and leaves the key untouched.
type UpdateFunc func(current string, exists bool) (string, error)

// StateClient stores small per-client records with an optional time to live.
type StateClient interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// Update applies fn as one atomic read-modify-write, also across
	// processes sharing the store.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error
	Ping(ctx context.Context) error
}
