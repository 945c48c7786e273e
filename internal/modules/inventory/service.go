package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// Service defines stock management business logic.
type Service interface {
	// ListItems returns all items, or only those with the given derived status.
	ListItems(ctx context.Context, status StockStatus) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error

	// Restock adds a positive quantity to an item's stock.
	Restock(ctx context.Context, id string, req RestockRequest) (*Item, error)

	// Chart returns the stock levels sorted from lowest to highest.
	Chart(ctx context.Context) ([]ChartEntry, error)

	// LowStockCount counts items that are low or out of stock.
	LowStockCount(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
	pub  events.Publisher
	log  *logger.Logger
}

// NewService creates a new inventory service.
func NewService(repo Repository, pub events.Publisher, log *logger.Logger) Service {
	return &service{repo: repo, pub: pub, log: log.WithComponent("inventory")}
}

func (s *service) ListItems(ctx context.Context, status StockStatus) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return items, nil
	}
	out := []*Item{}
	for _, it := range items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	it := &Item{
		ID:                generateItemNumber(time.Now().UTC()),
		Name:              strings.TrimSpace(req.Name),
		Stock:             req.Stock,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}
	it.Status = DeriveStatus(it.Stock, it.LowStockThreshold)
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to persist inventory item: %w", err)
	}
	s.log.Info("inventory item created", "item_id", it.ID, "name", it.Name)
	return it, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &Item{
		ID:                id,
		Name:              strings.TrimSpace(req.Name),
		Stock:             req.Stock,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	})
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("inventory item deleted", "item_id", id)
	return nil
}

func (s *service) Restock(ctx context.Context, id string, req RestockRequest) (*Item, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be > 0", ErrValidation)
	}
	it, err := s.repo.AddStock(ctx, id, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info("inventory restocked", "item_id", id, "quantity", req.Quantity, "stock", it.Stock)
	events.Emit(ctx, s.pub, s.log, events.New(events.InventoryRestocked, id, map[string]interface{}{
		"quantity": req.Quantity,
		"stock":    it.Stock,
		"status":   it.Status,
	}))
	return it, nil
}

func (s *service) Chart(ctx context.Context) ([]ChartEntry, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Stock < items[j].Stock })
	out := make([]ChartEntry, 0, len(items))
	for _, it := range items {
		out = append(out, ChartEntry{
			Name:      it.Name,
			Stock:     it.Stock,
			Threshold: it.LowStockThreshold,
			Unit:      it.Unit,
			Status:    it.Status,
		})
	}
	return out, nil
}

func (s *service) LowStockCount(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if it.Status != InStock {
			n++
		}
	}
	return n, nil
}

// generateItemNumber creates an inventory item number: INV-YYYYMMDD-XXXXXXXX
func generateItemNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}
