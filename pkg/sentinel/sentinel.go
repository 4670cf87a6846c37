package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches, and source clients
// return these (optionally wrapped) so the engine can translate them into
// degradation decisions instead of aborting a cycle.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store or cache
// - ErrUnavailable: remote source or resource temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
