package purchase

import "context"

// Repository defines purchase storage. Both update methods refuse to touch a
// purchase that is no longer pending.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, id string) (*Purchase, error)

	// List returns purchases by purchase date, most recent first.
	List(ctx context.Context) ([]*Purchase, error)

	// Update replaces the details of a pending purchase.
	Update(ctx context.Context, p *Purchase) (*Purchase, error)

	// UpdateStatus applies a transition allowed by CanTransition and returns
	// the status it replaced.
	UpdateStatus(ctx context.Context, id string, next Status) (*Purchase, Status, error)
}
