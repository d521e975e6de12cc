// Package search defines the full-text index kept in sync with item
// mutations, and a process-local reference implementation.
package search

import (
	"context"

	"todocore/todo"
)

// Index is the full-text store over items. Documents are keyed by item
// ID; every mutating service call is expected to mirror its outcome here
// after the repository write commits.
type Index interface {
	// Upsert indexes or replaces the document for item.ID with the
	// item's full field set.
	Upsert(ctx context.Context, item todo.Item) error

	// Search returns items whose title or description match the query,
	// in relevance order. The result length is bounded by the engine's
	// default page size.
	Search(ctx context.Context, query string) ([]todo.Item, error)

	// RemoveIfPresent deletes the document for id. A missing document is
	// not an error.
	RemoveIfPresent(ctx context.Context, id string) error
}
