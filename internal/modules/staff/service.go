package staff

import "context"

// Service defines the interface for staff management.
type Service interface {
	ListStaff(ctx context.Context) ([]*Member, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, req MemberRequest) (*Member, error)
	UpdateMember(ctx context.Context, id string, req MemberRequest) (*Member, error)
	ToggleStatus(ctx context.Context, id string) (*Member, error)
}
