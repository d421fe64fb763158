// Package storage provides the key-value boundary used for preferences
// and submission history. Values are opaque bytes; callers own the schema.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
