package staff

import "context"

// Repository defines staff member storage.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]*Member, error)

	// Update replaces name, role and hourly rate. The status is kept.
	Update(ctx context.Context, m *Member) (*Member, error)

	// ToggleStatus flips the member between active and inactive.
	ToggleStatus(ctx context.Context, id string) (*Member, error)
}
