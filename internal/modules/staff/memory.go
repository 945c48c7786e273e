package staff

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu      sync.RWMutex
	members map[string]*Member
}

// NewMemoryRepository returns an empty in-process staff store.
func NewMemoryRepository() Repository {
	return &memoryRepo{members: make(map[string]*Member)}
}

func (r *memoryRepo) Create(_ context.Context, m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.members[m.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, m.ID)
	}
	c := *m
	r.members[m.ID] = &c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *m
	return &c, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, in *Member) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[in.ID]
	if !ok {
		return nil, ErrNotFound
	}
	m.Name, m.Role, m.HourlyRate = in.Name, in.Role, in.HourlyRate
	c := *m
	return &c, nil
}

func (r *memoryRepo) ToggleStatus(_ context.Context, id string) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.Status = m.Status.Toggle()
	c := *m
	return &c, nil
}
