package share

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("report not found")

// Store is an append-only key-value store for whole JSON records.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
