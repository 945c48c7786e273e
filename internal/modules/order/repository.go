package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// Create persists a new order and its items.
	Create(ctx context.Context, o *Order) error

	// GetByID returns ErrNotFound when the order does not exist.
	GetByID(ctx context.Context, id string) (*Order, error)

	// List returns the orders matching f, newest first.
	List(ctx context.Context, f Filter) ([]*Order, error)

	// UpdateStatus moves the order from one status to another. It fails with
	// ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}
