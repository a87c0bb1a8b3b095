// Package localstore keeps named slots of serialized state for the console.
// A slot is always read whole and overwritten whole; there are no partial
// updates and the last writer wins.
package localstore

import (
	"context"
	"errors"
)

var ErrSlotNotFound = errors.New("slot not found")

// Store abstracts the slot backend for dependency injection and testing.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, value []byte) error
	Delete(ctx context.Context, name string) error
}
