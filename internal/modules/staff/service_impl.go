package staff

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

type service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new staff service.
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log.WithComponent("staff")}
}

func (s *service) ListStaff(ctx context.Context) ([]*Member, error) {
	return s.repo.List(ctx)
}

func (s *service) GetMember(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateMember(ctx context.Context, req MemberRequest) (*Member, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	m := &Member{
		ID:         fmt.Sprintf("STF-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(uuid.New().String()[:8])),
		Name:       strings.TrimSpace(req.Name),
		Role:       req.Role,
		HourlyRate: req.HourlyRate,
		Status:     StatusActive,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.log.Info("staff member created", "member_id", m.ID, "role", m.Role)
	return m, nil
}

func (s *service) UpdateMember(ctx context.Context, id string, req MemberRequest) (*Member, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &Member{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Role:       req.Role,
		HourlyRate: req.HourlyRate,
	})
}

func (s *service) ToggleStatus(ctx context.Context, id string) (*Member, error) {
	m, err := s.repo.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("staff member status toggled", "member_id", id, "status", m.Status)
	return m, nil
}
