package cache

import (
	"context"
	"errors"
)

// Keys of the local snapshots. They mirror the keys the browser app kept in
// localStorage, one blob per collection.
const (
	KeyMenu      = "chickey:menu"
	KeyInventory = "chickey:inventory"
	KeyOrders    = "chickey:orders"
	KeyStats     = "chickey:stats"
)

var ErrMiss = errors.New("cache miss")

// Store is the local snapshot cache: best-effort secondary persistence, read
// once at boot as a fallback, overwritten whenever the in-memory state
// changes. Never authoritative.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
}
