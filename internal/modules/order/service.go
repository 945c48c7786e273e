package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// Service defines the order board business logic.
type Service interface {
	// CreateOrder validates the items, computes the total and stores a NEW order.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders newest first, optionally filtered.
	ListOrders(ctx context.Context, f Filter) ([]*Order, error)

	// Board groups the orders into the board columns.
	Board(ctx context.Context) (*Board, error)

	// AdvanceStatus moves an order one step along NEW → IN_PROGRESS → COMPLETED → PAID.
	AdvanceStatus(ctx context.Context, id string) (*Order, error)

	// UpdateStatus sets an explicit status, validated against the state machine.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// CancelOrder cancels a NEW or IN_PROGRESS order.
	CancelOrder(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository
	pub  events.Publisher
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, pub events.Publisher, log *logger.Logger) Service {
	return &service{repo: repo, pub: pub, log: log.WithComponent("order"), now: time.Now}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.TableNumber <= 0 {
		return nil, fmt.Errorf("%w: table_number must be > 0", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item name is required", ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0 for item %s", ErrValidation, name)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative for item %s", ErrValidation, name)
		}
		items = append(items, Item{ID: it.ID, Name: name, Quantity: it.Quantity, Price: it.Price})
	}

	now := s.now().UTC()
	o := &Order{
		ID:          generateOrderNumber(now),
		TableNumber: req.TableNumber,
		Items:       items,
		Status:      StatusNew,
		Timestamp:   now,
	}
	o.Total = o.ComputeTotal()

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	s.log.Info("order created", "order_id", o.ID, "table_number", o.TableNumber, "total", o.Total)
	events.Emit(ctx, s.pub, s.log, events.New(events.OrderCreated, o.ID, o))
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, f Filter) ([]*Order, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Board(ctx context.Context) (*Board, error) {
	orders, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	b := &Board{New: []*Order{}, InProgress: []*Order{}, Completed: []*Order{}, Paid: []*Order{}}
	for _, o := range orders {
		switch o.Status {
		case StatusNew:
			b.New = append(b.New, o)
		case StatusInProgress:
			b.InProgress = append(b.InProgress, o)
		case StatusCompleted:
			b.Completed = append(b.Completed, o)
		case StatusPaid:
			b.Paid = append(b.Paid, o)
		}
	}
	return b, nil
}

func (s *service) AdvanceStatus(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := o.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: order %s has no next status after %s", ErrInvalidTransition, id, o.Status)
	}
	return s.transition(ctx, o, next)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	next, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%w: cannot transition order from %s to %s", ErrInvalidTransition, o.Status, next)
	}
	return s.transition(ctx, o, next)
}

func (s *service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, fmt.Errorf("%w: only NEW or IN_PROGRESS orders can be cancelled (current: %s)", ErrInvalidTransition, o.Status)
	}
	return s.transition(ctx, o, StatusCancelled)
}

func (s *service) transition(ctx context.Context, o *Order, next Status) (*Order, error) {
	prev := o.Status
	if err := s.repo.UpdateStatus(ctx, o.ID, prev, next); err != nil {
		return nil, err
	}
	o.Status = next
	s.log.Info("order status changed", "order_id", o.ID, "from", prev, "to", next)
	events.Emit(ctx, s.pub, s.log, events.New(events.OrderStatusChanged, o.ID, map[string]Status{"from": prev, "to": next}))
	return o, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXXXXXX
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
