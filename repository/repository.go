// Package repository owns the canonical item collection. The cache is
// the preferred source when reachable; the in-memory working set is the
// last-resort fallback, so no code path here depends on the cache for
// correctness.
package repository

import (
	"context"
	"log/slog"

	"todocore/cache"
	"todocore/todo"
)

// ItemRepository coordinates the in-memory item set with the aggregate
// and per-item cache entries. Consistency rule: every mutation rewrites
// or deletes the aggregate key, never leaves it stale.
type ItemRepository struct {
	cache  cache.Cache
	logger *slog.Logger
	items  []todo.Item
}

// New creates an ItemRepository backed by the provided cache.
func New(c cache.Cache, logger *slog.Logger) *ItemRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemRepository{cache: c, logger: logger}
}

// Add appends a new item. It fails with todo.DuplicateIDError when an
// item with the same ID already resolves, then persists both the full
// aggregate and the per-item entry.
func (r *ItemRepository) Add(ctx context.Context, item todo.Item) error {
	existing, err := r.Find(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return &todo.DuplicateIDError{ID: item.ID}
	}

	r.items = append(r.items, item)
	r.persistAll(ctx)
	_ = r.cache.Set(ctx, cache.ItemKey(item.ID), item)
	return nil
}

// Find resolves an item by ID. The per-item cache entry wins when
// present; otherwise the in-memory set is scanned and, on a hit, the
// per-item entry is backfilled so the next Find is served from cache.
// A total miss returns (nil, nil).
func (r *ItemRepository) Find(ctx context.Context, id string) (*todo.Item, error) {
	var cached todo.Item
	ok, err := r.cache.Get(ctx, cache.ItemKey(id), &cached)
	if err != nil {
		return nil, err
	}
	if ok {
		return &cached, nil
	}

	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			// Self-healing: restore the per-item entry lost by the cache.
			_ = r.cache.Set(ctx, cache.ItemKey(id), item)
			return &item, nil
		}
	}
	return nil, nil
}

// Update applies the non-nil fields to the item with the given ID,
// in place, then rewrites the aggregate and per-item entries. Unknown
// or nil fields are ignored. Returns (nil, nil) when no item matches.
func (r *ItemRepository) Update(ctx context.Context, id string, fields todo.Fields) (*todo.Item, error) {
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		fields.Apply(&r.items[i])
		item := r.items[i]
		r.persistAll(ctx)
		_ = r.cache.Set(ctx, cache.ItemKey(id), item)
		return &item, nil
	}
	return nil, nil
}

// Delete removes the item with the given ID. Returns false when the ID
// is unknown. The per-item and aggregate entries are deleted before the
// in-memory removal so the next List rebuilds from the updated set; a
// post-delete verification re-reads the per-item key and logs when the
// cache still holds it, but the in-memory removal stands regardless.
func (r *ItemRepository) Delete(ctx context.Context, id string) (bool, error) {
	idx := -1
	for i := range r.items {
		if r.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	_, _ = r.cache.Delete(ctx, cache.ItemKey(id))
	_, _ = r.cache.Delete(ctx, cache.AllItemsKey)

	r.items = append(r.items[:idx], r.items[idx+1:]...)
	r.persistAll(ctx)

	var stale todo.Item
	if ok, _ := r.cache.Get(ctx, cache.ItemKey(id), &stale); ok {
		// The cache is not authoritative, so the deletion still holds.
		r.logger.Warn("per-item cache entry survived delete", "id", id)
	}
	return true, nil
}

// List returns the full collection. When the aggregate entry is present
// it replaces the in-memory set wholesale (cache wins over memory on
// read); otherwise the current in-memory set is persisted as the new
// aggregate along with its per-item entries.
func (r *ItemRepository) List(ctx context.Context) ([]todo.Item, error) {
	var cached []todo.Item
	ok, err := r.cache.Get(ctx, cache.AllItemsKey, &cached)
	if err != nil {
		return nil, err
	}
	if ok {
		r.items = cached
		return r.snapshot(), nil
	}

	r.persistAll(ctx)
	for _, item := range r.items {
		_ = r.cache.Set(ctx, cache.ItemKey(item.ID), item)
	}
	return r.snapshot(), nil
}

// Len reports the size of the in-memory working set.
func (r *ItemRepository) Len() int { return len(r.items) }

func (r *ItemRepository) persistAll(ctx context.Context) {
	_ = r.cache.Set(ctx, cache.AllItemsKey, r.items)
}

func (r *ItemRepository) snapshot() []todo.Item {
	out := make([]todo.Item, len(r.items))
	copy(out, r.items)
	return out
}
