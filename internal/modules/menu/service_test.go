package menu_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/menu"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

type stubDescriber struct {
	names []string
	text  string
	err   error
}

func (d *stubDescriber) DescribeDish(_ context.Context, name string) (string, error) {
	d.names = append(d.names, name)
	return d.text, d.err
}

func newService(t *testing.T, d menu.Describer) menu.Service {
	t.Helper()
	repo := menu.NewMemoryRepository()
	for _, it := range fixtures.MenuItems() {
		require.NoError(t, repo.Create(context.Background(), it))
	}
	return menu.NewService(repo, d, logger.Discard())
}

func TestGroupByCategory(t *testing.T) {
	svc := newService(t, nil)

	sections, err := svc.GroupByCategory(context.Background())
	require.NoError(t, err)

	got := map[menu.Category]int{}
	order := []menu.Category{}
	for _, s := range sections {
		got[s.Category] = len(s.Items)
		order = append(order, s.Category)
	}
	assert.Equal(t, menu.Categories, order)
	assert.Equal(t, map[menu.Category]int{
		menu.CategoryStarter:  2,
		menu.CategoryMain:     3,
		menu.CategoryDessert:  2,
		menu.CategoryDrink:    1,
		menu.CategoryCocktail: 2,
	}, got)
}

func TestListItemsIsNumericallyOrdered(t *testing.T) {
	svc := newService(t, nil)

	items, err := svc.ListItems(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "10", items[9].ID)

	desserts, err := svc.ListItems(context.Background(), menu.CategoryDessert)
	require.NoError(t, err)
	assert.Len(t, desserts, 2)
}

func TestCreateAndUpdateItem(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	it, err := svc.CreateItem(ctx, menu.ItemRequest{Name: "Crème Brûlée", Price: 8.5, Category: "dessert"})
	require.NoError(t, err)
	assert.Regexp(t, `^MENU-\d{8}-[0-9A-F]{8}$`, it.ID)
	assert.Equal(t, menu.CategoryDessert, it.Category)

	it, err = svc.UpdateItem(ctx, it.ID, menu.ItemRequest{Name: "Crème Brûlée", Price: 9, Category: "Dessert"})
	require.NoError(t, err)
	assert.Equal(t, 9.0, it.Price)

	_, err = svc.CreateItem(ctx, menu.ItemRequest{Name: "Soupe", Price: 6, Category: "Soupes"})
	assert.ErrorIs(t, err, menu.ErrValidation)

	_, err = svc.UpdateItem(ctx, "999", menu.ItemRequest{Name: "Soupe", Price: 6, Category: "Entrée"})
	assert.ErrorIs(t, err, menu.ErrNotFound)
}

func TestGenerateDescription(t *testing.T) {
	d := &stubDescriber{text: "  Un tiramisu aérien.  "}
	svc := newService(t, d)
	ctx := context.Background()

	resp, err := svc.GenerateDescription(ctx, menu.DescribeRequest{ItemID: "6"})
	require.NoError(t, err)
	assert.Equal(t, "Tiramisu", resp.Name)
	assert.Equal(t, "Un tiramisu aérien.", resp.Description)

	_, err = svc.GenerateDescription(ctx, menu.DescribeRequest{Name: "Tarte Tatin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tiramisu", "Tarte Tatin"}, d.names)

	_, err = svc.GenerateDescription(ctx, menu.DescribeRequest{})
	assert.ErrorIs(t, err, menu.ErrValidation)

	_, err = newService(t, nil).GenerateDescription(ctx, menu.DescribeRequest{Name: "Tarte Tatin"})
	assert.ErrorIs(t, err, menu.ErrNoDescriber)
}

func TestHandlerDescribeErrors(t *testing.T) {
	failing := &stubDescriber{err: errors.New("upstream down")}
	tests := []struct {
		name string
		d    menu.Describer
		body string
		want int
	}{
		{"ok", &stubDescriber{text: "ok"}, `{"name":"Tarte Tatin"}`, http.StatusOK},
		{"generator failure", failing, `{"name":"Tarte Tatin"}`, http.StatusBadGateway},
		{"no describer", nil, `{"name":"Tarte Tatin"}`, http.StatusServiceUnavailable},
		{"unknown item", failing, `{"item_id":"999"}`, http.StatusNotFound},
		{"empty", failing, `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			menu.NewHandler(newService(t, tt.d)).RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/menu/describe", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
