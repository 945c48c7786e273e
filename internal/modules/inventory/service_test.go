package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/inventory"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

func newService(t *testing.T) (inventory.Service, *events.Recorder) {
	t.Helper()
	repo := inventory.NewMemoryRepository()
	for _, it := range fixtures.InventoryItems() {
		require.NoError(t, repo.Create(context.Background(), it))
	}
	rec := events.NewRecorder()
	return inventory.NewService(repo, rec, logger.Discard()), rec
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		stock, threshold float64
		want             inventory.StockStatus
	}{
		{0, 0, inventory.OutOfStock},
		{0, 10, inventory.OutOfStock},
		{-1, 0, inventory.OutOfStock},
		{0.5, 0, inventory.InStock},
		{1, 0, inventory.InStock},
		{5, 10, inventory.LowStock},
		{10, 10, inventory.LowStock},
		{10.01, 10, inventory.InStock},
		{0.01, 10, inventory.LowStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inventory.DeriveStatus(tt.stock, tt.threshold), "stock=%v threshold=%v", tt.stock, tt.threshold)
	}
}

func TestListItemsByStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	all, err := svc.ListItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 8)

	low, err := svc.ListItems(ctx, inventory.LowStock)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "inv003", low[0].ID)
	assert.Equal(t, "inv007", low[1].ID)

	n, err := svc.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRestock(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	it, err := svc.Restock(ctx, "inv007", inventory.RestockRequest{Quantity: 3.1})
	require.NoError(t, err)
	assert.Equal(t, 5.1, it.Stock)
	assert.Equal(t, inventory.InStock, it.Status)
	assert.Equal(t, []string{events.InventoryRestocked}, rec.Types())

	_, err = svc.Restock(ctx, "inv007", inventory.RestockRequest{Quantity: 0})
	assert.ErrorIs(t, err, inventory.ErrValidation)

	_, err = svc.Restock(ctx, "inv999", inventory.RestockRequest{Quantity: 1})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestItemCRUD(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	it, err := svc.CreateItem(ctx, inventory.ItemRequest{Name: "Farine T55", Stock: 0, Unit: inventory.UnitKilogram, LowStockThreshold: 5})
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{8}$`, it.ID)
	assert.Equal(t, inventory.OutOfStock, it.Status)

	it, err = svc.UpdateItem(ctx, it.ID, inventory.ItemRequest{Name: "Farine T55", Stock: 20, Unit: inventory.UnitKilogram, LowStockThreshold: 5})
	require.NoError(t, err)
	assert.Equal(t, inventory.InStock, it.Status)

	_, err = svc.CreateItem(ctx, inventory.ItemRequest{Name: "Sel", Stock: 1, Unit: "barrels"})
	assert.ErrorIs(t, err, inventory.ErrValidation)

	require.NoError(t, svc.DeleteItem(ctx, it.ID))
	_, err = svc.GetItem(ctx, it.ID)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestChartIsSortedByStock(t *testing.T) {
	svc, _ := newService(t)

	entries, err := svc.Chart(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 8)
	assert.Equal(t, "Chocolat Noir 70%", entries[0].Name)
	assert.Equal(t, "Pain Burger", entries[7].Name)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Stock, entries[i].Stock)
	}
}
