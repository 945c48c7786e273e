package report

import "github.com/georgemunganga/gastrotech-backend/internal/modules/order"

// CostRate is the share of revenue counted as cost in the financial report.
const CostRate = 40.0

// Financial summarises paid orders.
type Financial struct {
	TotalRevenue   float64     `json:"total_revenue"`
	PaidOrders     int         `json:"paid_orders"`
	EstimatedCosts float64     `json:"estimated_costs"`
	NetProfit      float64     `json:"net_profit"`
	MarginPercent  float64     `json:"margin_percent"`
	AverageBasket  float64     `json:"average_basket"`
	SalesByDay     []DaySales  `json:"sales_by_day"`
	TopItems       []ItemSales `json:"top_items"`
}

// DaySales is the revenue of one calendar day.
type DaySales struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Revenue float64 `json:"revenue"`
}

// ItemSales aggregates one item across orders.
type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Dashboard is the home page overview over all orders.
type Dashboard struct {
	TotalRevenue   float64         `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	RecentOrders   []*order.Order  `json:"recent_orders"`
	MenuByCategory []CategoryCount `json:"menu_by_category"`
	LowStockItems  int             `json:"low_stock_items"`
	Occupancy      Occupancy       `json:"occupancy"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Occupancy counts tables per status.
type Occupancy struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Reserved  int `json:"reserved"`
}
