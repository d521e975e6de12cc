package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"todocore/todo"
)

// memoryLimit caps Search results, matching the default page size of a
// typical engine.
const memoryLimit = 10

// Memory is a process-local Index. Matching is substring-based over
// title and description with a crude relevance score: a title hit ranks
// above a description hit, ties break on ID for determinism.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]todo.Item
}

// NewMemory returns an empty in-process Index.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]todo.Item)}
}

// Upsert implements Index.
func (m *Memory) Upsert(ctx context.Context, item todo.Item) error {
	m.mu.Lock()
	m.docs[item.ID] = item
	m.mu.Unlock()
	return nil
}

// Search implements Index.
func (m *Memory) Search(ctx context.Context, query string) ([]todo.Item, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	type scored struct {
		item  todo.Item
		score int
	}

	m.mu.RLock()
	var hits []scored
	for _, doc := range m.docs {
		score := 0
		if strings.Contains(strings.ToLower(doc.Title), needle) {
			score += 2
		}
		if strings.Contains(strings.ToLower(doc.Description), needle) {
			score++
		}
		if score > 0 {
			hits = append(hits, scored{item: doc, score: score})
		}
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].item.ID < hits[j].item.ID
	})

	if len(hits) > memoryLimit {
		hits = hits[:memoryLimit]
	}
	items := make([]todo.Item, len(hits))
	for i, h := range hits {
		items[i] = h.item
	}
	return items, nil
}

// RemoveIfPresent implements Index.
func (m *Memory) RemoveIfPresent(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.docs, id)
	m.mu.Unlock()
	return nil
}

// Len reports the number of indexed documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
