// Package cache stores the last successfully fetched snapshot per source so
// the engine can degrade to known data when an upstream is unreachable.
package cache

import "context"

// Snapshot keys, one per external source.
const (
	KeyEvents   = "snapshot:events"
	KeyRegistry = "snapshot:registry"
	KeyQueue    = "snapshot:queue"
	KeyDecided  = "snapshot:decided"
)

// Store persists and recalls one JSON-serializable payload per key.
// Load returns sentinel.ErrNotFound when no payload has been saved yet.
type Store interface {
	Save(ctx context.Context, key string, payload any) error
	Load(ctx context.Context, key string, out any) error
}
