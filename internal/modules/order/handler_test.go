package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newService(t)
	r := chi.NewRouter()
	order.NewHandler(svc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandlerOrderLifecycle(t *testing.T) {
	h := newRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/orders",
		`{"table_number":5,"items":[{"id":"3","name":"Filet de Boeuf","quantity":1,"price":28},{"id":"10","name":"Vin Rouge - Bordeaux","quantity":1,"price":7}],"total":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 35.0, created.Total)
	assert.Equal(t, order.StatusNew, created.Status)

	w = do(t, h, http.MethodPost, "/api/v1/orders/"+created.ID+"/advance", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"IN_PROGRESS"`)

	w = do(t, h, http.MethodPatch, "/api/v1/orders/"+created.ID+"/status", `{"status":"NEW"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/orders/board", "")
	require.Equal(t, http.StatusOK, w.Code)
	var board order.Board
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(t, board.InProgress, 1)
	assert.Empty(t, board.New)

	w = do(t, h, http.MethodGet, "/api/v1/orders?table=5&status=in_progress", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(t, h, http.MethodPost, "/api/v1/orders/"+created.ID+"/cancel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"CANCELLED"`)
}

func TestHandlerErrors(t *testing.T) {
	h := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed body", http.MethodPost, "/api/v1/orders", `{`, http.StatusBadRequest},
		{"empty order", http.MethodPost, "/api/v1/orders", `{"table_number":1,"items":[]}`, http.StatusBadRequest},
		{"unknown order", http.MethodGet, "/api/v1/orders/ORD-404", "", http.StatusNotFound},
		{"bad status filter", http.MethodGet, "/api/v1/orders?status=SERVED", "", http.StatusBadRequest},
		{"bad table filter", http.MethodGet, "/api/v1/orders?table=five", "", http.StatusBadRequest},
		{"empty list", http.MethodGet, "/api/v1/orders", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := do(t, h, http.MethodGet, "/api/v1/orders", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}
