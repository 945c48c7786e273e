package order

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewMemoryRepository returns an empty in-process order store.
func NewMemoryRepository() Repository {
	return &memoryRepo{orders: make(map[string]*Order)}
}

func (r *memoryRepo) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[o.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, o.ID)
	}
	r.orders[o.ID] = o.clone()
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o.clone(), nil
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		if f.match(o) {
			out = append(out, o.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return fmt.Errorf("%w: order %s is %s, not %s", ErrInvalidTransition, id, o.Status, from)
	}
	o.Status = to
	return nil
}
