// Package service orchestrates the item repository and the search
// index: every mutation that changes an item's persisted state is
// mirrored into (or removed from) the index, strictly after the
// repository write.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todocore/cache"
	"todocore/repository"
	"todocore/search"
	"todocore/todo"
)

// DefaultSearchTTL bounds how long a memoized search result may outlive
// the last mutation seen by another process.
const DefaultSearchTTL = 30 * time.Second

// ItemService wraps the repository with cache invalidation and search
// index synchronization. The repository is authoritative for existence;
// index write failures surface as *todo.IndexWriteError without undoing
// the committed repository mutation.
type ItemService struct {
	repo    *repository.ItemRepository
	index   search.Index
	cache   cache.Cache
	queries *searchCache
	logger  *slog.Logger
}

// New wires an ItemService from its collaborators.
func New(repo *repository.ItemRepository, index search.Index, c cache.Cache, logger *slog.Logger) *ItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemService{
		repo:    repo,
		index:   index,
		cache:   c,
		queries: newSearchCache(DefaultSearchTTL),
		logger:  logger,
	}
}

// Create builds a new pending item with a fresh ID and persists it.
// A *todo.IndexWriteError is returned together with the created item
// when only the index write failed.
func (s *ItemService) Create(ctx context.Context, title, description, dueDate string) (*todo.Item, error) {
	item := todo.Item{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      todo.StatusPending,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}

	// Add already rewrote the aggregate; drop it anyway so the next
	// List rebuilds from the authoritative set.
	_, _ = s.cache.Delete(ctx, cache.AllItemsKey)
	s.queries.invalidateAll()

	if err := s.index.Upsert(ctx, item); err != nil {
		s.logger.Error("index upsert failed after create", "id", item.ID, "error", err)
		return &item, &todo.IndexWriteError{Op: "upsert", ID: item.ID, Err: err}
	}
	return &item, nil
}

// GetAll returns every item.
func (s *ItemService) GetAll(ctx context.Context) ([]todo.Item, error) {
	return s.repo.List(ctx)
}

// GetByID returns the item with the given ID, or nil when unknown.
func (s *ItemService) GetByID(ctx context.Context, id string) (*todo.Item, error) {
	return s.repo.Find(ctx, id)
}

// Update applies the non-nil fields to the stored item and re-indexes
// the item's full current field set, so the index never holds values
// from a stale version. Returns (nil, nil) when the ID is unknown.
func (s *ItemService) Update(ctx context.Context, id string, fields todo.Fields) (*todo.Item, error) {
	item, err := s.repo.Update(ctx, id, fields)
	if err != nil || item == nil {
		return item, err
	}

	s.queries.invalidateAll()

	if err := s.index.Upsert(ctx, *item); err != nil {
		s.logger.Error("index upsert failed after update", "id", id, "error", err)
		return item, &todo.IndexWriteError{Op: "upsert", ID: id, Err: err}
	}
	return item, nil
}

// MarkCompleted transitions the item to the completed status.
func (s *ItemService) MarkCompleted(ctx context.Context, id string) (*todo.Item, error) {
	completed := string(todo.StatusCompleted)
	return s.Update(ctx, id, todo.Fields{Status: &completed})
}

// Delete removes the item from the repository, cache and index. The
// index document is removed only after the repository confirms the
// deletion; a failed repository delete leaves the index untouched.
func (s *ItemService) Delete(ctx context.Context, id string) (bool, error) {
	_, _ = s.cache.Delete(ctx, cache.ItemKey(id))
	_, _ = s.cache.Delete(ctx, cache.AllItemsKey)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.queries.invalidateAll()

	if err := s.index.RemoveIfPresent(ctx, id); err != nil {
		s.logger.Error("index remove failed after delete", "id", id, "error", err)
		return true, &todo.IndexWriteError{Op: "remove", ID: id, Err: err}
	}
	return true, nil
}

// Search queries the index over title and description, read-through a
// short-lived in-process result cache.
func (s *ItemService) Search(ctx context.Context, query string) ([]todo.Item, error) {
	return s.queries.getOrFetch(ctx, query, func(ctx context.Context) ([]todo.Item, error) {
		return s.index.Search(ctx, query)
	})
}
