// Package kvstore provides the whole-value record store backing the catalog
// snapshot and the order ledger. Records are read and written as complete
// values under fixed keys, last writer wins; there is no merging and no
// version check.
package kvstore

import "context"

// Keys for the records the application persists.
const (
	KeyProducts = "products"
	KeyOrders   = "orders"
)

// ErrNotFound distinguishes an absent key from a driver failure. Callers fall
// back to seed data on ErrNotFound and surface anything else.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "kvstore: key not found" }

// Store is the whole-value byte store.
type Store interface {
	// Get returns the full value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the full value stored under key unconditionally.
	Set(ctx context.Context, key string, value []byte) error
}
