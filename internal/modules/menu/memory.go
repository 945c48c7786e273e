package menu

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]*Item
}

// NewMemoryRepository returns an empty in-process menu store.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[string]*Item)}
}

func (r *memoryRepo) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, it.ID)
	}
	c := *it
	r.items[it.ID] = &c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *it
	return &c, nil
}

func (r *memoryRepo) List(_ context.Context, category Category) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		if category == "" || it.Category == category {
			c := *it
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	c := *it
	r.items[it.ID] = &c
	return nil
}

// lessID orders numeric ids numerically and everything else after them, lexically.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
