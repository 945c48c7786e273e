package floor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// OrderLookup is the part of the order service the floor needs.
type OrderLookup interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// Service defines the floor plan business logic: tables, reservations and
// the links between them.
type Service interface {
	ListTables(ctx context.Context) ([]*Table, error)
	GetTable(ctx context.Context, id int) (*Table, error)
	CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error)
	UpdateTable(ctx context.Context, id int, req UpdateTableRequest) (*Table, error)

	// SetTableStatus changes a table's occupancy and keeps the reservation
	// link consistent on both sides.
	SetTableStatus(ctx context.Context, id int, req SetTableStatusRequest) (*Table, error)

	// AssignOrder links an open order placed for this table.
	AssignOrder(ctx context.Context, id int, req AssignOrderRequest) (*Table, error)
	ClearOrder(ctx context.Context, id int) (*Table, error)

	// AvailableReservations lists the confirmed reservations a table may be
	// linked to: unlinked ones and the one already on the table.
	AvailableReservations(ctx context.Context, tableID int) ([]*Reservation, error)

	CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	ListReservations(ctx context.Context) ([]*Reservation, error)
	UpdateReservation(ctx context.Context, id string, req ReservationRequest) (*Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, req UpdateReservationStatusRequest) (*Reservation, error)

	// ReopenReservation moves an Arrived or Cancelled reservation back to Confirmed.
	ReopenReservation(ctx context.Context, id string) (*Reservation, error)
}

type service struct {
	repo   Repository
	orders OrderLookup
	pub    events.Publisher
	log    *logger.Logger
	now    func() time.Time
}

// NewService creates a new floor service.
func NewService(repo Repository, orders OrderLookup, pub events.Publisher, log *logger.Logger) Service {
	return &service{repo: repo, orders: orders, pub: pub, log: log.WithComponent("floor"), now: time.Now}
}

// ── tables ────────────────────────────────────────────────────────────────────

func (s *service) ListTables(ctx context.Context) ([]*Table, error) {
	return s.repo.ListTables(ctx)
}

func (s *service) GetTable(ctx context.Context, id int) (*Table, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *service) CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error) {
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be >= 1", ErrValidation)
	}
	t := &Table{Status: TableAvailable, Capacity: req.Capacity}
	if err := s.repo.CreateTable(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to persist table: %w", err)
	}
	s.log.Info("table created", "table_id", t.ID, "capacity", t.Capacity)
	return t, nil
}

func (s *service) UpdateTable(ctx context.Context, id int, req UpdateTableRequest) (*Table, error) {
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be >= 1", ErrValidation)
	}
	return s.repo.UpdateCapacity(ctx, id, req.Capacity)
}

func (s *service) SetTableStatus(ctx context.Context, id int, req SetTableStatusRequest) (*Table, error) {
	next, err := ParseTableStatus(req.Status)
	if err != nil {
		return nil, err
	}
	reservationID := strings.TrimSpace(req.ReservationID)

	var prev Table
	t, err := s.repo.SetStatus(ctx, id, func(current *Table) (Change, error) {
		prev = *current
		return PlanStatusChange(current, next, reservationID), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("table status changed",
		"table_id", id, "from", prev.Status, "to", t.Status,
		"reservation_id", t.ReservationID, "previous_reservation_id", prev.ReservationID)
	events.Emit(ctx, s.pub, s.log, events.New(events.TableStatusChanged, strconv.Itoa(id), map[string]interface{}{
		"from":           prev.Status,
		"to":             t.Status,
		"reservation_id": t.ReservationID,
	}))
	return t, nil
}

func (s *service) AssignOrder(ctx context.Context, id int, req AssignOrderRequest) (*Table, error) {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order_id is required", ErrValidation)
	}
	o, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, order.ErrNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	if !o.Status.Open() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrValidation, orderID, o.Status)
	}
	if o.TableNumber != id {
		return nil, fmt.Errorf("%w: order %s belongs to table %d", ErrValidation, orderID, o.TableNumber)
	}
	t, err := s.repo.SetOrder(ctx, id, orderID)
	if err != nil {
		return nil, err
	}
	s.log.Info("order assigned to table", "table_id", id, "order_id", orderID)
	return t, nil
}

func (s *service) ClearOrder(ctx context.Context, id int) (*Table, error) {
	return s.repo.SetOrder(ctx, id, "")
}

func (s *service) AvailableReservations(ctx context.Context, tableID int) ([]*Reservation, error) {
	if _, err := s.repo.GetTable(ctx, tableID); err != nil {
		return nil, err
	}
	all, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	out := []*Reservation{}
	for _, r := range all {
		if r.Status == ReservationConfirmed && (r.TableID == nil || *r.TableID == tableID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── reservations ──────────────────────────────────────────────────────────────

func (s *service) CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	r := &Reservation{
		ID:              generateReservationNumber(s.now().UTC()),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		GuestCount:      req.GuestCount,
		ReservationTime: req.ReservationTime,
		Status:          ReservationConfirmed,
	}
	if err := s.repo.CreateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}
	s.log.Info("reservation created", "reservation_id", r.ID, "guest_count", r.GuestCount)
	events.Emit(ctx, s.pub, s.log, events.New(events.ReservationCreated, r.ID, r))
	return r, nil
}

func (s *service) GetReservation(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *service) ListReservations(ctx context.Context) ([]*Reservation, error) {
	return s.repo.ListReservations(ctx)
}

func (s *service) UpdateReservation(ctx context.Context, id string, req ReservationRequest) (*Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateReservation(ctx, &Reservation{
		ID:              id,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		GuestCount:      req.GuestCount,
		ReservationTime: req.ReservationTime,
	})
}

func (s *service) UpdateReservationStatus(ctx context.Context, id string, req UpdateReservationStatusRequest) (*Reservation, error) {
	next, err := ParseReservationStatus(req.Status)
	if err != nil {
		return nil, err
	}
	return s.changeReservationStatus(ctx, id, func(current ReservationStatus) (ReservationStatus, error) {
		if !CanTransition(current, next) {
			return "", fmt.Errorf("%w: cannot transition reservation from %s to %s", ErrInvalidTransition, current, next)
		}
		return next, nil
	})
}

func (s *service) ReopenReservation(ctx context.Context, id string) (*Reservation, error) {
	return s.changeReservationStatus(ctx, id, func(current ReservationStatus) (ReservationStatus, error) {
		if !current.Terminal() {
			return "", fmt.Errorf("%w: only ARRIVED or CANCELLED reservations can be reopened (current: %s)", ErrInvalidTransition, current)
		}
		return ReservationConfirmed, nil
	})
}

func (s *service) changeReservationStatus(ctx context.Context, id string, check func(ReservationStatus) (ReservationStatus, error)) (*Reservation, error) {
	var prev ReservationStatus
	r, err := s.repo.UpdateReservationStatus(ctx, id, func(current ReservationStatus) (ReservationStatus, error) {
		prev = current
		return check(current)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reservation status changed", "reservation_id", id, "from", prev, "to", r.Status)
	events.Emit(ctx, s.pub, s.log, events.New(events.ReservationStatusChanged, id, map[string]ReservationStatus{"from": prev, "to": r.Status}))
	return r, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateReservationNumber creates a reservation number: RES-YYYYMMDD-XXXXXXXX
func generateReservationNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("RES-%s-%s", now.Format("20060102"), suffix)
}
