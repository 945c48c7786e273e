package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/money"
)

// Service defines supplier purchase business logic.
type Service interface {
	ListPurchases(ctx context.Context) ([]*Purchase, error)
	GetPurchase(ctx context.Context, id string) (*Purchase, error)
	CreatePurchase(ctx context.Context, req PurchaseRequest) (*Purchase, error)

	// UpdatePurchase edits the details of a pending purchase.
	UpdatePurchase(ctx context.Context, id string, req PurchaseRequest) (*Purchase, error)

	// UpdateStatus completes or cancels a pending purchase. Completed and
	// cancelled purchases are final.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Purchase, error)
}

type service struct {
	repo Repository
	pub  events.Publisher
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a new purchase service.
func NewService(repo Repository, pub events.Publisher, log *logger.Logger) Service {
	return &service{repo: repo, pub: pub, log: log.WithComponent("purchase"), now: time.Now}
}

func (s *service) ListPurchases(ctx context.Context) ([]*Purchase, error) {
	return s.repo.List(ctx)
}

func (s *service) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreatePurchase(ctx context.Context, req PurchaseRequest) (*Purchase, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p := &Purchase{
		ID:               generatePurchaseNumber(now),
		Supplier:         strings.TrimSpace(req.Supplier),
		ItemsDescription: strings.TrimSpace(req.ItemsDescription),
		TotalCost:        money.Sum(req.TotalCost),
		PurchaseDate:     req.PurchaseDate,
		Status:           StatusPending,
	}
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = now
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist purchase: %w", err)
	}
	s.log.Info("purchase created", "purchase_id", p.ID, "supplier", p.Supplier, "total_cost", p.TotalCost)
	events.Emit(ctx, s.pub, s.log, events.New(events.PurchaseCreated, p.ID, p))
	return p, nil
}

func (s *service) UpdatePurchase(ctx context.Context, id string, req PurchaseRequest) (*Purchase, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := &Purchase{
		ID:               id,
		Supplier:         strings.TrimSpace(req.Supplier),
		ItemsDescription: strings.TrimSpace(req.ItemsDescription),
		TotalCost:        money.Sum(req.TotalCost),
		PurchaseDate:     req.PurchaseDate,
	}
	if p.PurchaseDate.IsZero() {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p.PurchaseDate = current.PurchaseDate
	}
	return s.repo.Update(ctx, p)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Purchase, error) {
	next, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	p, prev, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.log.Info("purchase status changed", "purchase_id", id, "from", prev, "to", next)
	events.Emit(ctx, s.pub, s.log, events.New(events.PurchaseStatusChanged, id, map[string]Status{"from": prev, "to": next}))
	return p, nil
}

// generatePurchaseNumber creates a purchase number: ACH-YYYYMMDD-XXXXXXXX
func generatePurchaseNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ACH-%s-%s", now.Format("20060102"), suffix)
}
