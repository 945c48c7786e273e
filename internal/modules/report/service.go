package report

import (
	"context"
	"sort"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/floor"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/menu"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/money"
)

type OrderSource interface {
	ListOrders(ctx context.Context, f order.Filter) ([]*order.Order, error)
}

type MenuSource interface {
	ListItems(ctx context.Context, category menu.Category) ([]*menu.Item, error)
}

type StockSource interface {
	LowStockCount(ctx context.Context) (int, error)
}

type TableSource interface {
	ListTables(ctx context.Context) ([]*floor.Table, error)
}

// Service computes read-only reports over the other modules.
type Service interface {
	Financial(ctx context.Context) (*Financial, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	orders OrderSource
	menu   MenuSource
	stock  StockSource
	tables TableSource
	loc    *time.Location
}

// NewService creates the report service. Days are cut in the local time zone.
func NewService(orders OrderSource, menu MenuSource, stock StockSource, tables TableSource) Service {
	return &service{orders: orders, menu: menu, stock: stock, tables: tables, loc: time.Local}
}

var weekdays = [...]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

func (s *service) Financial(ctx context.Context) (*Financial, error) {
	paid, err := s.orders.ListOrders(ctx, order.Filter{Status: order.StatusPaid})
	if err != nil {
		return nil, err
	}

	totals := make([]float64, 0, len(paid))
	byDay := map[string]*DaySales{}
	byItem := map[string]*ItemSales{}
	for _, o := range paid {
		totals = append(totals, o.Total)

		t := o.Timestamp.In(s.loc)
		key := t.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &DaySales{Date: key, Weekday: weekdays[t.Weekday()]}
			byDay[key] = day
		}
		day.Revenue = money.Sum(day.Revenue, o.Total)

		for _, it := range o.Items {
			agg, ok := byItem[it.Name]
			if !ok {
				agg = &ItemSales{Name: it.Name}
				byItem[it.Name] = agg
			}
			agg.Quantity += it.Quantity
			agg.Revenue = money.Sum(agg.Revenue, money.Line(it.Quantity, it.Price))
		}
	}

	revenue := money.Sum(totals...)
	costs := money.Percent(revenue, CostRate)
	profit := money.Sum(revenue, -costs)
	f := &Financial{
		TotalRevenue:   revenue,
		PaidOrders:     len(paid),
		EstimatedCosts: costs,
		NetProfit:      profit,
		MarginPercent:  money.Ratio(profit*100, revenue, 1),
		AverageBasket:  money.Ratio(revenue, float64(len(paid)), 2),
		SalesByDay:     []DaySales{},
		TopItems:       []ItemSales{},
	}

	for _, d := range byDay {
		f.SalesByDay = append(f.SalesByDay, *d)
	}
	sort.Slice(f.SalesByDay, func(i, j int) bool { return f.SalesByDay[i].Date < f.SalesByDay[j].Date })

	for _, it := range byItem {
		f.TopItems = append(f.TopItems, *it)
	}
	sort.Slice(f.TopItems, func(i, j int) bool {
		if f.TopItems[i].Revenue == f.TopItems[j].Revenue {
			return f.TopItems[i].Name < f.TopItems[j].Name
		}
		return f.TopItems[i].Revenue > f.TopItems[j].Revenue
	})
	if len(f.TopItems) > 5 {
		f.TopItems = f.TopItems[:5]
	}
	return f, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.orders.ListOrders(ctx, order.Filter{})
	if err != nil {
		return nil, err
	}
	items, err := s.menu.ListItems(ctx, "")
	if err != nil {
		return nil, err
	}
	low, err := s.stock.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := s.tables.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, 0, len(orders))
	for _, o := range orders {
		totals = append(totals, o.Total)
	}
	d := &Dashboard{
		TotalRevenue:   money.Sum(totals...),
		TotalOrders:    len(orders),
		RecentOrders:   orders,
		MenuByCategory: []CategoryCount{},
		LowStockItems:  low,
	}
	// orders come newest first
	if len(d.RecentOrders) > 5 {
		d.RecentOrders = d.RecentOrders[:5]
	}

	counts := map[menu.Category]int{}
	for _, it := range items {
		counts[it.Category]++
	}
	for _, c := range menu.Categories {
		if counts[c] > 0 {
			d.MenuByCategory = append(d.MenuByCategory, CategoryCount{Category: string(c), Count: counts[c]})
		}
	}

	for _, t := range tables {
		switch t.Status {
		case floor.TableAvailable:
			d.Occupancy.Available++
		case floor.TableOccupied:
			d.Occupancy.Occupied++
		case floor.TableReserved:
			d.Occupancy.Reserved++
		}
	}
	return d, nil
}
