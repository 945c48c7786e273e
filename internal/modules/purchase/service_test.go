package purchase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/purchase"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

func newService(t *testing.T) (purchase.Service, *events.Recorder) {
	t.Helper()
	repo := purchase.NewMemoryRepository()
	for _, p := range fixtures.Purchases(time.Now()) {
		require.NoError(t, repo.Create(context.Background(), p))
	}
	rec := events.NewRecorder()
	return purchase.NewService(repo, rec, logger.Discard()), rec
}

func TestTerminalStatusesAreFinal(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	p, err := svc.UpdateStatus(ctx, "ACH003", purchase.UpdateStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusCompleted, p.Status)

	for _, id := range []string{"ACH001", "ACH003"} {
		for _, next := range []string{"PENDING", "CANCELLED", "COMPLETED"} {
			_, err := svc.UpdateStatus(ctx, id, purchase.UpdateStatusRequest{Status: next})
			assert.ErrorIs(t, err, purchase.ErrInvalidTransition, "%s -> %s", id, next)
		}
	}

	got, err := svc.GetPurchase(ctx, "ACH003")
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusCompleted, got.Status)
	require.Equal(t, []string{events.PurchaseStatusChanged}, rec.Types())
	changed := rec.Events()[0]
	assert.Equal(t, "ACH003", changed.EntityID)
	assert.JSONEq(t, `{"from":"PENDING","to":"COMPLETED"}`, string(changed.Payload))
}

func TestCancelPending(t *testing.T) {
	svc, _ := newService(t)

	p, err := svc.UpdateStatus(context.Background(), "ACH003", purchase.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusCancelled, p.Status)
}

func TestUpdatePurchaseOnlyWhilePending(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req := purchase.PurchaseRequest{Supplier: "Le Primeur Local", ItemsDescription: "40x Laitue Romaine", TotalCost: 32}
	p, err := svc.UpdatePurchase(ctx, "ACH003", req)
	require.NoError(t, err)
	assert.Equal(t, 32.0, p.TotalCost)
	assert.False(t, p.PurchaseDate.IsZero())

	_, err = svc.UpdatePurchase(ctx, "ACH001", req)
	assert.ErrorIs(t, err, purchase.ErrInvalidTransition)
}

func TestCreatePurchase(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePurchase(ctx, purchase.PurchaseRequest{Supplier: "Metro Cash & Carry", ItemsDescription: "10kg Riz Arborio", TotalCost: 45.5})
	require.NoError(t, err)
	assert.Regexp(t, `^ACH-\d{8}-[0-9A-F]{8}$`, p.ID)
	assert.Equal(t, purchase.StatusPending, p.Status)
	assert.WithinDuration(t, time.Now(), p.PurchaseDate, time.Minute)

	all, err := svc.ListPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, p.ID, all[0].ID)

	require.Equal(t, []string{events.PurchaseCreated}, rec.Types())
	created := rec.Events()[0]
	assert.Equal(t, p.ID, created.EntityID)
	assert.Equal(t, "purchase", created.Category())
	var payload purchase.Purchase
	require.NoError(t, json.Unmarshal(created.Payload, &payload))
	assert.Equal(t, "Metro Cash & Carry", payload.Supplier)
	assert.Equal(t, purchase.StatusPending, payload.Status)

	_, err = svc.CreatePurchase(ctx, purchase.PurchaseRequest{Supplier: " "})
	assert.ErrorIs(t, err, purchase.ErrValidation)
	assert.Len(t, rec.Events(), 1)
}
