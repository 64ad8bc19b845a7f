// Package kv defines the persisted key/value port backing the simulated
// browser storage, together with a SQLite and an in-memory implementation.
//
// The stores only rely on get/set/remove semantics with same-process
// visibility after a restart; the concrete medium is interchangeable.
package kv

import "context"

// Repository is the key/value port. Get returns (nil, nil) for a missing
// key so callers can distinguish "absent" from a storage failure.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
