package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/menu"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// OrderSource provides the orders used for data placeholders.
type OrderSource interface {
	ListOrders(ctx context.Context, f order.Filter) ([]*order.Order, error)
}

// MenuSource provides the menu items used for data placeholders.
type MenuSource interface {
	List(ctx context.Context, category menu.Category) ([]*menu.Item, error)
}

// Service bridges the back-office to the text generator.
type Service interface {
	// Generate renders the use case template (or req.Template) and sends it
	// to the generator. Without a generator the result carries
	// NotConfiguredMessage and no call is made.
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)

	// DailySummary analyses the current orders.
	DailySummary(ctx context.Context) (*Result, error)

	// DescribeDish writes a menu description for a dish name.
	DescribeDish(ctx context.Context, name string) (string, error)
}

// GenerateRequest selects a use case and fills its template.
type GenerateRequest struct {
	UseCase  UseCase           `json:"use_case"`
	Template string            `json:"template,omitempty"`
	Values   map[string]string `json:"values,omitempty"`
}

// Result is the generated text. Configured is false when no credential is set.
type Result struct {
	UseCase    UseCase `json:"use_case"`
	Text       string  `json:"text"`
	Configured bool    `json:"configured"`
}

type service struct {
	gen    Generator
	orders OrderSource
	menu   MenuSource
	log    *logger.Logger
}

// NewService creates the assistant. gen is nil when no credential is configured.
func NewService(gen Generator, orders OrderSource, menu MenuSource, log *logger.Logger) Service {
	return &service{gen: gen, orders: orders, menu: menu, log: log.WithComponent("assistant")}
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	p, ok := profiles[req.UseCase]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUseCase, req.UseCase)
	}
	if s.gen == nil {
		return &Result{UseCase: req.UseCase, Text: NotConfiguredMessage}, nil
	}

	template := p.template
	if strings.TrimSpace(req.Template) != "" {
		template = req.Template
	}
	values, err := s.fillData(ctx, req.UseCase, template, req.Values)
	if err != nil {
		return nil, err
	}
	prompt := Render(template, values)

	start := time.Now()
	text, err := s.gen.Generate(ctx, p.system, prompt, p.temperature)
	if err != nil {
		s.log.Error("text generation failed", "use_case", req.UseCase, "error", err)
		if req.UseCase == UseCaseDailySummary {
			return nil, ErrSummary
		}
		return nil, ErrGeneration
	}
	s.log.Info("text generated", "use_case", req.UseCase, "duration_ms", time.Since(start).Milliseconds())
	return &Result{UseCase: req.UseCase, Text: text, Configured: true}, nil
}

func (s *service) DailySummary(ctx context.Context) (*Result, error) {
	return s.Generate(ctx, GenerateRequest{UseCase: UseCaseDailySummary})
}

func (s *service) DescribeDish(ctx context.Context, name string) (string, error) {
	res, err := s.Generate(ctx, GenerateRequest{
		UseCase: UseCaseDescription,
		Values:  map[string]string{"dishName": name},
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// fillData copies values and adds the {{orders}} and {{menuItems}} snapshots
// the template needs and the caller left out.
func (s *service) fillData(ctx context.Context, uc UseCase, template string, in map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(in)+2)
	for k, v := range in {
		values[k] = v
	}
	for _, name := range Placeholders(template) {
		if _, ok := values[name]; ok {
			continue
		}
		switch name {
		case PlaceholderOrders:
			snapshot, err := s.ordersSnapshot(ctx, uc)
			if err != nil {
				return nil, err
			}
			values[name] = snapshot
		case PlaceholderMenuItems:
			snapshot, err := s.menuSnapshot(ctx)
			if err != nil {
				return nil, err
			}
			values[name] = snapshot
		}
	}
	return values, nil
}

type forecastOrder struct {
	Total     float64   `json:"total"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

type optimizationOrder struct {
	Items []string `json:"items"`
}

type summaryOrder struct {
	Total     float64   `json:"total"`
	Items     string    `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

type menuEntry struct {
	Name     string        `json:"name"`
	Price    float64       `json:"price"`
	Category menu.Category `json:"category"`
}

func (s *service) ordersSnapshot(ctx context.Context, uc UseCase) (string, error) {
	orders, err := s.orders.ListOrders(ctx, order.Filter{})
	if err != nil {
		return "", fmt.Errorf("load orders: %w", err)
	}
	rows := []interface{}{}
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, it.Name)
		}
		switch uc {
		case UseCaseOptimization:
			rows = append(rows, optimizationOrder{Items: names})
		case UseCaseDailySummary:
			lines := make([]string, 0, len(o.Items))
			for _, it := range o.Items {
				lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
			}
			rows = append(rows, summaryOrder{Total: o.Total, Items: strings.Join(lines, ", "), Timestamp: o.Timestamp})
		default:
			rows = append(rows, forecastOrder{Total: o.Total, Items: names, Timestamp: o.Timestamp})
		}
	}
	return indentJSON(rows)
}

func (s *service) menuSnapshot(ctx context.Context) (string, error) {
	items, err := s.menu.List(ctx, "")
	if err != nil {
		return "", fmt.Errorf("load menu: %w", err)
	}
	rows := make([]menuEntry, 0, len(items))
	for _, it := range items {
		rows = append(rows, menuEntry{Name: it.Name, Price: it.Price, Category: it.Category})
	}
	return indentJSON(rows)
}

func indentJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
