package floor

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu           sync.RWMutex
	tables       map[int]*Table
	reservations map[string]*Reservation
}

// NewMemoryRepository returns an empty in-process floor store.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		tables:       make(map[int]*Table),
		reservations: make(map[string]*Reservation),
	}
}

func (r *memoryRepo) CreateTable(_ context.Context, t *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		for id := range r.tables {
			if id > t.ID {
				t.ID = id
			}
		}
		t.ID++
	}
	if _, exists := r.tables[t.ID]; exists {
		return fmt.Errorf("%w: table %d already exists", ErrValidation, t.ID)
	}
	stored := *t
	stored.ReservationID = ""
	r.tables[t.ID] = &stored
	return nil
}

func (r *memoryRepo) GetTable(_ context.Context, id int) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tableView(id)
}

func (r *memoryRepo) ListTables(_ context.Context) ([]*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Table, 0, len(r.tables))
	for id := range r.tables {
		t, _ := r.tableView(id)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) UpdateCapacity(_ context.Context, id, capacity int) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, id)
	}
	t.Capacity = capacity
	return r.tableView(id)
}

func (r *memoryRepo) SetOrder(_ context.Context, tableID int, orderID string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
	}
	t.OrderID = orderID
	return r.tableView(tableID)
}

func (r *memoryRepo) SetStatus(_ context.Context, tableID int, plan func(*Table) (Change, error)) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.tableView(tableID)
	if err != nil {
		return nil, err
	}
	change, err := plan(current)
	if err != nil {
		return nil, err
	}
	var next *Reservation
	if change.ReservationID != "" {
		res, ok := r.reservations[change.ReservationID]
		if !ok {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, change.ReservationID)
		}
		next = res
	}

	for _, res := range r.reservations {
		if res.LinkedTo(tableID) && res != next {
			res.TableID = nil
		}
	}
	if next != nil {
		id := tableID
		next.TableID = &id
	}
	t := r.tables[tableID]
	t.Status = change.Status
	if change.Status == TableAvailable {
		t.OrderID = ""
	}
	return r.tableView(tableID)
}

func (r *memoryRepo) CreateReservation(_ context.Context, res *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reservations[res.ID]; exists {
		return fmt.Errorf("%w: reservation %s already exists", ErrValidation, res.ID)
	}
	if res.TableID != nil {
		if _, ok := r.tables[*res.TableID]; !ok {
			return fmt.Errorf("%w: table %d", ErrNotFound, *res.TableID)
		}
		if linked := r.linkedReservation(*res.TableID); linked != nil {
			return fmt.Errorf("%w: table %d already linked to %s", ErrValidation, *res.TableID, linked.ID)
		}
	}
	r.reservations[res.ID] = res.clone()
	return nil
}

func (r *memoryRepo) GetReservation(_ context.Context, id string) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}
	return res.clone(), nil
}

func (r *memoryRepo) ListReservations(_ context.Context) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		out = append(out, res.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReservationTime.Equal(out[j].ReservationTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReservationTime.Before(out[j].ReservationTime)
	})
	return out, nil
}

func (r *memoryRepo) UpdateReservation(_ context.Context, in *Reservation) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[in.ID]
	if !ok {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, in.ID)
	}
	res.CustomerName = in.CustomerName
	res.PhoneNumber = in.PhoneNumber
	res.GuestCount = in.GuestCount
	res.ReservationTime = in.ReservationTime
	return res.clone(), nil
}

func (r *memoryRepo) UpdateReservationStatus(_ context.Context, id string, check func(ReservationStatus) (ReservationStatus, error)) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}
	next, err := check(res.Status)
	if err != nil {
		return nil, err
	}
	res.Status = next
	return res.clone(), nil
}

// ── helpers (caller holds the lock) ──────────────────────────────────────────

func (r *memoryRepo) tableView(id int) (*Table, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, id)
	}
	view := *t
	if res := r.linkedReservation(id); res != nil {
		view.ReservationID = res.ID
	}
	return &view, nil
}

func (r *memoryRepo) linkedReservation(tableID int) *Reservation {
	for _, res := range r.reservations {
		if res.LinkedTo(tableID) {
			return res
		}
	}
	return nil
}
