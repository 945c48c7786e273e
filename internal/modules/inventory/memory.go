package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]*Item
}

// NewMemoryRepository returns an empty in-process inventory store.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[string]*Item)}
}

func (r *memoryRepo) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, it.ID)
	}
	r.items[it.ID] = it.clone()
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return it.clone(), nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, in *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[in.ID]; !ok {
		return nil, ErrNotFound
	}
	r.items[in.ID] = in.clone()
	return in.clone(), nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) AddStock(_ context.Context, id string, quantity float64) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	it.Stock = decimal.NewFromFloat(it.Stock).Add(decimal.NewFromFloat(quantity)).InexactFloat64()
	return it.clone(), nil
}
