package inventory

import "context"

// Repository defines stock item storage. Returned items carry their derived status.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, it *Item) (*Item, error)
	Delete(ctx context.Context, id string) error

	// AddStock increments the stock of an item atomically.
	AddStock(ctx context.Context, id string, quantity float64) (*Item, error)
}
