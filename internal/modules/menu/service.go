package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/money"
)

// Describer writes a menu description for a dish.
type Describer interface {
	DescribeDish(ctx context.Context, name string) (string, error)
}

// Service defines menu business logic.
type Service interface {
	ListItems(ctx context.Context, category Category) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error)

	// GroupByCategory returns one section per category, in menu order. Empty
	// categories are left out.
	GroupByCategory(ctx context.Context) ([]Section, error)

	// GenerateDescription asks the describer for a description of an existing
	// item or of a dish name. Describer errors are returned unchanged.
	GenerateDescription(ctx context.Context, req DescribeRequest) (*DescribeResponse, error)
}

type service struct {
	repo      Repository
	describer Describer
	log       *logger.Logger
}

// NewService creates a new menu service. describer may be nil.
func NewService(repo Repository, describer Describer, log *logger.Logger) Service {
	return &service{repo: repo, describer: describer, log: log.WithComponent("menu")}
}

func (s *service) ListItems(ctx context.Context, category Category) ([]*Item, error) {
	return s.repo.List(ctx, category)
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	it, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	it.ID = fmt.Sprintf("MENU-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.log.Info("menu item created", "item_id", it.ID, "name", it.Name)
	return it, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	it, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	it.ID = id
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GroupByCategory(ctx context.Context) ([]Section, error) {
	items, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	byCategory := make(map[Category][]*Item)
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}
	sections := []Section{}
	for _, c := range Categories {
		if len(byCategory[c]) > 0 {
			sections = append(sections, Section{Category: c, Items: byCategory[c]})
		}
	}
	return sections, nil
}

func (s *service) GenerateDescription(ctx context.Context, req DescribeRequest) (*DescribeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if req.ItemID != "" {
		it, err := s.repo.GetByID(ctx, req.ItemID)
		if err != nil {
			return nil, err
		}
		name = it.Name
	}
	if name == "" {
		return nil, fmt.Errorf("%w: item_id or name is required", ErrValidation)
	}
	if s.describer == nil {
		return nil, ErrNoDescriber
	}
	text, err := s.describer.DescribeDish(ctx, name)
	if err != nil {
		return nil, err
	}
	return &DescribeResponse{Name: name, Description: strings.TrimSpace(text)}, nil
}

func fromRequest(req ItemRequest) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	category, err := ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	return &Item{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       money.Sum(req.Price),
		Category:    category,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}, nil
}
