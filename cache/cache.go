package cache

import "context"

// Cache is a best-effort key/value store holding JSON-serializable
// values. Implementations must never make the caller's correctness
// depend on them: a backend outage degrades every operation to its
// zero outcome instead of surfacing transport errors.
type Cache interface {
	// Get deserializes the value stored under key into dest and reports
	// whether the key was present. A missing or unreadable entry yields
	// (false, nil).
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set serializes value and stores it under key, replacing any
	// previous entry.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the entry under key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
}

// Noop is the disabled-mode Cache: every operation succeeds and does
// nothing. It is selected at construction time when the backing store is
// unreachable, keeping the cache a pure optimization for its consumers.
type Noop struct{}

// NewNoop returns a Cache whose operations are all no-ops.
func NewNoop() *Noop { return &Noop{} }

// Get always reports the key as absent.
func (*Noop) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// Set discards the value.
func (*Noop) Set(ctx context.Context, key string, value any) error {
	return nil
}

// Delete always reports the key as absent.
func (*Noop) Delete(ctx context.Context, key string) (bool, error) {
	return false, nil
}
