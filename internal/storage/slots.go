// Package storage provides named durable slots: each key holds one serialized
// value that is always read and written whole.
package storage

import (
	"context"
	"errors"
)

var ErrSlotNotFound = errors.New("slot not found")

type Slots interface {
	// Get returns ErrSlotNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}
