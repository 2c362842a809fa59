// Package kv defines the key-value persistence port the ledger is stored through.
package kv

import "context"

// Store is a string key-value store. Get reports ok=false for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
