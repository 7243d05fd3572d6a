// Package store persists the small amount of client state that must
// survive a page reload within a checkout visit: the movie picked on
// the listing screen and the resolved session identifier.  Both keys
// are cleared together when an order completes.
package store

import "context"

// Keys persisted per visit.
const (
	KeySelectedMovie = "selectedMovie"
	KeySessionID     = "sessionId"
)

// Store is a visit-scoped key-value store.  Get returns the empty
// string for a missing key; absence is not an error.
type Store interface {
	Get(ctx context.Context, visitID, key string) (string, error)
	Set(ctx context.Context, visitID, key, value string) error
	Clear(ctx context.Context, visitID string, keys ...string) error
}
