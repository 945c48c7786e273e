package purchase

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu        sync.RWMutex
	purchases map[string]*Purchase
}

// NewMemoryRepository returns an empty in-process purchase store.
func NewMemoryRepository() Repository {
	return &memoryRepo{purchases: make(map[string]*Purchase)}
}

func (r *memoryRepo) Create(_ context.Context, p *Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.purchases[p.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, p.ID)
	}
	c := *p
	r.purchases[p.ID] = &c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, in *Purchase) (*Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[in.ID]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Status != StatusPending {
		return nil, fmt.Errorf("%w: purchase %s is %s", ErrInvalidTransition, p.ID, p.Status)
	}
	p.Supplier = in.Supplier
	p.ItemsDescription = in.ItemsDescription
	p.TotalCost = in.TotalCost
	p.PurchaseDate = in.PurchaseDate
	c := *p
	return &c, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, next Status) (*Purchase, Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	prev := p.Status
	if !CanTransition(prev, next) {
		return nil, "", fmt.Errorf("%w: cannot transition purchase from %s to %s", ErrInvalidTransition, prev, next)
	}
	p.Status = next
	c := *p
	return &c, prev, nil
}
