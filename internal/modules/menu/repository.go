package menu

import "context"

// Repository defines the interface for menu item data storage.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	// List returns items of one category, or all items when category is empty.
	List(ctx context.Context, category Category) ([]*Item, error)
	Update(ctx context.Context, it *Item) error
}
