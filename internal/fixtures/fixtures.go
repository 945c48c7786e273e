// Package fixtures holds the demo data the server starts with. Times are
// relative to the moment of seeding so the dashboards always look current.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/floor"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/inventory"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/menu"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/purchase"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/staff"
)

// Stores are the repositories Seed writes into.
type Stores struct {
	Menu      menu.Repository
	Orders    order.Repository
	Floor     floor.Repository
	Inventory inventory.Repository
	Staff     staff.Repository
	Purchases purchase.Repository
}

// Seed loads the demo data. Reservations go in after the tables they hold.
func Seed(ctx context.Context, s Stores, now time.Time) error {
	for _, it := range MenuItems() {
		if err := s.Menu.Create(ctx, it); err != nil {
			return fmt.Errorf("seed menu item %s: %w", it.ID, err)
		}
	}
	for _, o := range Orders(now) {
		if err := s.Orders.Create(ctx, o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}
	for _, t := range Tables() {
		if err := s.Floor.CreateTable(ctx, t); err != nil {
			return fmt.Errorf("seed table %d: %w", t.ID, err)
		}
	}
	for _, r := range Reservations(now) {
		if err := s.Floor.CreateReservation(ctx, r); err != nil {
			return fmt.Errorf("seed reservation %s: %w", r.ID, err)
		}
	}
	for _, it := range InventoryItems() {
		if err := s.Inventory.Create(ctx, it); err != nil {
			return fmt.Errorf("seed inventory item %s: %w", it.ID, err)
		}
	}
	for _, m := range StaffMembers() {
		if err := s.Staff.Create(ctx, m); err != nil {
			return fmt.Errorf("seed staff member %s: %w", m.ID, err)
		}
	}
	for _, p := range Purchases(now) {
		if err := s.Purchases.Create(ctx, p); err != nil {
			return fmt.Errorf("seed purchase %s: %w", p.ID, err)
		}
	}
	return nil
}

func MenuItems() []*menu.Item {
	return []*menu.Item{
		{ID: "1", Name: "Bruschetta Classique", Description: "Pain grillé frotté à l'ail et garni de tomates fraîches, basilic et huile d'olive.", Price: 8.50, Category: menu.CategoryStarter, ImageURL: "https://picsum.photos/id/20/400/300"},
		{ID: "2", Name: "Salade César", Description: "Laitue romaine croquante, croûtons à l'ail, copeaux de parmesan et notre vinaigrette César maison.", Price: 12.00, Category: menu.CategoryStarter, ImageURL: "https://picsum.photos/id/30/400/300"},
		{ID: "3", Name: "Filet de Boeuf", Description: "Tendre filet de bœuf grillé à la perfection, servi avec une sauce au poivre et des pommes de terre grenaille.", Price: 28.00, Category: menu.CategoryMain, ImageURL: "https://picsum.photos/id/40/400/300"},
		{ID: "4", Name: "Burger Gourmet", Description: "Steak haché de bœuf, cheddar maturé, oignons caramélisés, bacon croustillant et sauce secrète.", Price: 18.50, Category: menu.CategoryMain, ImageURL: "https://picsum.photos/id/50/400/300"},
		{ID: "5", Name: "Risotto aux Champignons", Description: "Risotto crémeux aux champignons sauvages, huile de truffe et parmesan.", Price: 21.00, Category: menu.CategoryMain, ImageURL: "https://picsum.photos/id/60/400/300"},
		{ID: "6", Name: "Tiramisu", Description: "Le classique dessert italien, crémeux et riche en café.", Price: 9.00, Category: menu.CategoryDessert, ImageURL: "https://picsum.photos/id/70/400/300"},
		{ID: "7", Name: "Fondant au Chocolat", Description: "Cœur coulant au chocolat noir, servi avec une boule de glace vanille.", Price: 9.50, Category: menu.CategoryDessert, ImageURL: "https://picsum.photos/id/80/400/300"},
		{ID: "8", Name: "Mojito Royal", Description: "Rhum, menthe fraîche, citron vert, sucre de canne, et une touche de champagne.", Price: 12.00, Category: menu.CategoryCocktail, ImageURL: "https://picsum.photos/id/90/400/300"},
		{ID: "9", Name: "Old Fashioned", Description: "Whiskey, sucre, Angostura bitters et un zeste d'orange.", Price: 11.00, Category: menu.CategoryCocktail, ImageURL: "https://picsum.photos/id/100/400/300"},
		{ID: "10", Name: "Vin Rouge - Bordeaux", Description: "Un verre de notre sélection du mois.", Price: 7.00, Category: menu.CategoryDrink, ImageURL: "https://picsum.photos/id/110/400/300"},
	}
}

const day = 24 * time.Hour

func line(id, name string, qty int, price float64) order.Item {
	return order.Item{ID: id, Name: name, Quantity: qty, Price: price}
}

func newOrder(id string, table int, status order.Status, at time.Time, items ...order.Item) *order.Order {
	o := &order.Order{ID: id, TableNumber: table, Items: items, Status: status, Timestamp: at.UTC()}
	o.Total = o.ComputeTotal()
	return o
}

// Orders spans today and the three previous days.
func Orders(now time.Time) []*order.Order {
	return []*order.Order{
		newOrder("ORD001", 5, order.StatusNew, now.Add(-5*time.Minute),
			line("3", "Filet de Boeuf", 1, 28.00), line("10", "Vin Rouge - Bordeaux", 1, 7.00)),
		newOrder("ORD002", 2, order.StatusInProgress, now.Add(-15*time.Minute),
			line("4", "Burger Gourmet", 2, 18.50), line("8", "Mojito Royal", 2, 12.00)),
		newOrder("ORD003", 12, order.StatusCompleted, now.Add(-30*time.Minute),
			line("6", "Tiramisu", 1, 9.00)),
		newOrder("ORD004", 8, order.StatusPaid, now.Add(-time.Hour),
			line("1", "Bruschetta Classique", 1, 8.50), line("5", "Risotto aux Champignons", 1, 21.00)),
		newOrder("ORD005", 3, order.StatusNew, now.Add(-2*time.Minute),
			line("9", "Old Fashioned", 2, 11.00)),

		newOrder("ORD101", 1, order.StatusPaid, now.Add(-day-2*time.Hour),
			line("4", "Burger Gourmet", 2, 18.50)),
		newOrder("ORD102", 7, order.StatusPaid, now.Add(-day-3*time.Hour),
			line("5", "Risotto aux Champignons", 1, 21.00), line("2", "Salade César", 1, 12.00)),

		newOrder("ORD201", 10, order.StatusPaid, now.Add(-2*day-4*time.Hour),
			line("8", "Mojito Royal", 4, 12.00)),

		newOrder("ORD301", 15, order.StatusPaid, now.Add(-3*day-time.Hour),
			line("3", "Filet de Boeuf", 2, 28.00), line("10", "Vin Rouge - Bordeaux", 2, 7.00), line("7", "Fondant au Chocolat", 2, 9.50)),
		newOrder("ORD302", 16, order.StatusPaid, now.Add(-3*day-2*time.Hour),
			line("4", "Burger Gourmet", 4, 18.50)),
	}
}

var capacities = [...]int{2, 4, 2, 6, 2, 4, 2, 4, 8, 4, 2, 4, 2, 4, 6, 2, 4, 2, 8, 4}

// Tables returns the twenty tables of the dining room. Reservation links are
// carried by Reservations.
func Tables() []*floor.Table {
	occupied := map[int]string{2: "ORD002", 3: "ORD005", 5: "ORD001"}
	reserved := map[int]bool{6: true, 10: true, 15: true}

	tables := make([]*floor.Table, 0, len(capacities))
	for i, c := range capacities {
		t := &floor.Table{ID: i + 1, Status: floor.TableAvailable, Capacity: c}
		if id, ok := occupied[t.ID]; ok {
			t.Status = floor.TableOccupied
			t.OrderID = id
		} else if reserved[t.ID] {
			t.Status = floor.TableReserved
		}
		tables = append(tables, t)
	}
	return tables
}

func tableRef(id int) *int { return &id }

func Reservations(now time.Time) []*floor.Reservation {
	return []*floor.Reservation{
		{ID: "RES001", CustomerName: "Alice Martin", PhoneNumber: "0612345678", GuestCount: 2,
			ReservationTime: now.Add(3 * time.Hour).UTC(), Status: floor.ReservationConfirmed, TableID: tableRef(6)},
		{ID: "RES002", CustomerName: "Bob Dupont", PhoneNumber: "0687654321", GuestCount: 4,
			ReservationTime: now.Add(4*time.Hour + 30*time.Minute).UTC(), Status: floor.ReservationConfirmed, TableID: tableRef(10)},
		{ID: "RES003", CustomerName: "Carla Durand", PhoneNumber: "0611223344", GuestCount: 6,
			ReservationTime: now.Add(day + 2*time.Hour).UTC(), Status: floor.ReservationConfirmed, TableID: tableRef(15)},
		{ID: "RES004", CustomerName: "David Petit", PhoneNumber: "0655667788", GuestCount: 2,
			ReservationTime: now.Add(-day).UTC(), Status: floor.ReservationArrived},
	}
}

func InventoryItems() []*inventory.Item {
	items := []*inventory.Item{
		{ID: "inv001", Name: "Filet de Bœuf", Stock: 15.5, Unit: inventory.UnitKilogram, LowStockThreshold: 10},
		{ID: "inv002", Name: "Tomates Roma", Stock: 25, Unit: inventory.UnitKilogram, LowStockThreshold: 15},
		{ID: "inv003", Name: "Laitue Romaine", Stock: 8, Unit: inventory.UnitPieces, LowStockThreshold: 10},
		{ID: "inv004", Name: "Pain Burger", Stock: 40, Unit: inventory.UnitPieces, LowStockThreshold: 24},
		{ID: "inv005", Name: "Vin Rouge Bordeaux", Stock: 12, Unit: inventory.UnitBottles, LowStockThreshold: 6},
		{ID: "inv006", Name: "Rhum Blanc", Stock: 5, Unit: inventory.UnitLitre, LowStockThreshold: 3},
		{ID: "inv007", Name: "Chocolat Noir 70%", Stock: 2, Unit: inventory.UnitKilogram, LowStockThreshold: 5},
		{ID: "inv008", Name: "Riz Arborio", Stock: 18, Unit: inventory.UnitKilogram, LowStockThreshold: 10},
	}
	for _, it := range items {
		it.Status = inventory.DeriveStatus(it.Stock, it.LowStockThreshold)
	}
	return items
}

func StaffMembers() []*staff.Member {
	return []*staff.Member{
		{ID: "staff001", Name: "Jean Dupont", Role: staff.RoleManager, HourlyRate: 25.50, Status: staff.StatusActive},
		{ID: "staff002", Name: "Marie Curie", Role: staff.RoleWaiter, HourlyRate: 15.00, Status: staff.StatusActive},
		{ID: "staff003", Name: "Pierre Martin", Role: staff.RoleCook, HourlyRate: 18.75, Status: staff.StatusActive},
		{ID: "staff004", Name: "Sophie Bernard", Role: staff.RoleBartender, HourlyRate: 16.20, Status: staff.StatusActive},
		{ID: "staff005", Name: "Lucas Petit", Role: staff.RoleWaiter, HourlyRate: 15.00, Status: staff.StatusInactive},
	}
}

func Purchases(now time.Time) []*purchase.Purchase {
	return []*purchase.Purchase{
		{ID: "ACH001", Supplier: "Metro Cash & Carry", ItemsDescription: "20kg Filet de Bœuf, 50kg Tomates Roma",
			TotalCost: 625.00, PurchaseDate: now.Add(-2 * day).UTC(), Status: purchase.StatusCompleted},
		{ID: "ACH002", Supplier: "Boissons & Co", ItemsDescription: "24x Vin Rouge Bordeaux, 12L Rhum Blanc",
			TotalCost: 288.00, PurchaseDate: now.Add(-day).UTC(), Status: purchase.StatusCompleted},
		{ID: "ACH003", Supplier: "Le Primeur Local", ItemsDescription: "30x Laitue Romaine",
			TotalCost: 24.00, PurchaseDate: now.Add(-5 * time.Hour).UTC(), Status: purchase.StatusPending},
	}
}

// NewMemoryStores returns empty in-process repositories for every module.
func NewMemoryStores() Stores {
	return Stores{
		Menu:      menu.NewMemoryRepository(),
		Orders:    order.NewMemoryRepository(),
		Floor:     floor.NewMemoryRepository(),
		Inventory: inventory.NewMemoryRepository(),
		Staff:     staff.NewMemoryRepository(),
		Purchases: purchase.NewMemoryRepository(),
	}
}

// Memory returns in-process repositories loaded with the demo data.
func Memory(ctx context.Context, now time.Time) (Stores, error) {
	s := NewMemoryStores()
	return s, Seed(ctx, s, now)
}
