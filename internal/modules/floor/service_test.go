package floor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/floor"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

type env struct {
	floor  floor.Service
	orders order.Service
	events *events.Recorder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	stores, err := fixtures.Memory(context.Background(), time.Now())
	require.NoError(t, err)
	rec := events.NewRecorder()
	orders := order.NewService(stores.Orders, rec, logger.Discard())
	return &env{
		floor:  floor.NewService(stores.Floor, orders, rec, logger.Discard()),
		orders: orders,
		events: rec,
	}
}

func (e *env) setStatus(t *testing.T, table int, status floor.TableStatus, reservationID string) *floor.Table {
	t.Helper()
	tb, err := e.floor.SetTableStatus(context.Background(), table, floor.SetTableStatusRequest{
		Status:        string(status),
		ReservationID: reservationID,
	})
	require.NoError(t, err)
	return tb
}

func (e *env) reservation(t *testing.T, id string) *floor.Reservation {
	t.Helper()
	r, err := e.floor.GetReservation(context.Background(), id)
	require.NoError(t, err)
	return r
}

func TestReservedPartyArrives(t *testing.T) {
	e := newEnv(t)

	before, err := e.floor.GetTable(context.Background(), 6)
	require.NoError(t, err)
	require.Equal(t, floor.TableReserved, before.Status)
	require.Equal(t, "RES001", before.ReservationID)

	tb := e.setStatus(t, 6, floor.TableOccupied, "")

	assert.Equal(t, floor.TableOccupied, tb.Status)
	assert.Equal(t, "RES001", tb.ReservationID)
	res := e.reservation(t, "RES001")
	require.NotNil(t, res.TableID)
	assert.Equal(t, 6, *res.TableID)
	assert.Equal(t, floor.ReservationConfirmed, res.Status)
	assert.Equal(t, []string{events.TableStatusChanged}, e.events.Types())
}

func TestReserveAvailableTable(t *testing.T) {
	e := newEnv(t)
	e.setStatus(t, 10, floor.TableAvailable, "")
	require.Nil(t, e.reservation(t, "RES002").TableID)

	tb := e.setStatus(t, 10, floor.TableReserved, "RES002")

	assert.Equal(t, floor.TableReserved, tb.Status)
	assert.Equal(t, "RES002", tb.ReservationID)
	res := e.reservation(t, "RES002")
	require.NotNil(t, res.TableID)
	assert.Equal(t, 10, *res.TableID)
}

func TestAvailableClearsOrderAndReservation(t *testing.T) {
	e := newEnv(t)

	for _, id := range []int{2, 3, 5, 6, 10, 15} {
		tb := e.setStatus(t, id, floor.TableAvailable, "")
		assert.Empty(t, tb.OrderID, "table %d", id)
		assert.Empty(t, tb.ReservationID, "table %d", id)
	}
	assert.Nil(t, e.reservation(t, "RES001").TableID)
}

func TestAvailableIgnoresReservationID(t *testing.T) {
	e := newEnv(t)

	tb := e.setStatus(t, 1, floor.TableAvailable, "RES004")

	assert.Empty(t, tb.ReservationID)
	assert.Nil(t, e.reservation(t, "RES004").TableID)
}

func TestReassignUnlinksPreviousReservation(t *testing.T) {
	e := newEnv(t)
	r, err := e.floor.CreateReservation(context.Background(), floor.ReservationRequest{
		CustomerName:    "Emma Leroy",
		PhoneNumber:     "0600000000",
		GuestCount:      3,
		ReservationTime: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	tb := e.setStatus(t, 6, floor.TableReserved, r.ID)

	assert.Equal(t, r.ID, tb.ReservationID)
	assert.Nil(t, e.reservation(t, "RES001").TableID)
	linked := e.reservation(t, r.ID)
	require.NotNil(t, linked.TableID)
	assert.Equal(t, 6, *linked.TableID)
}

func TestMovingReservationKeepsOneTablePerReservation(t *testing.T) {
	e := newEnv(t)

	e.setStatus(t, 1, floor.TableReserved, "RES002")

	tables, err := e.floor.ListTables(context.Background())
	require.NoError(t, err)
	holders := []int{}
	for _, tb := range tables {
		if tb.ReservationID == "RES002" {
			holders = append(holders, tb.ID)
		}
	}
	assert.Equal(t, []int{1}, holders)
	assert.Equal(t, 1, *e.reservation(t, "RES002").TableID)
}

func TestOccupiedFromAvailableHasNoReservation(t *testing.T) {
	e := newEnv(t)

	tb := e.setStatus(t, 4, floor.TableOccupied, "")

	assert.Equal(t, floor.TableOccupied, tb.Status)
	assert.Empty(t, tb.ReservationID)
}

func TestReserveWithoutReservation(t *testing.T) {
	e := newEnv(t)

	tb := e.setStatus(t, 4, floor.TableReserved, "")

	assert.Equal(t, floor.TableReserved, tb.Status)
	assert.Empty(t, tb.ReservationID)
}

// Linking an arrived reservation is accepted.
func TestLinkArrivedReservation(t *testing.T) {
	e := newEnv(t)

	tb := e.setStatus(t, 4, floor.TableOccupied, "RES004")

	assert.Equal(t, "RES004", tb.ReservationID)
	assert.Equal(t, floor.ReservationArrived, e.reservation(t, "RES004").Status)
}

func TestSetTableStatusErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.floor.SetTableStatus(ctx, 99, floor.SetTableStatusRequest{Status: "AVAILABLE"})
	assert.ErrorIs(t, err, floor.ErrNotFound)

	_, err = e.floor.SetTableStatus(ctx, 1, floor.SetTableStatusRequest{Status: "BROKEN"})
	assert.ErrorIs(t, err, floor.ErrValidation)

	_, err = e.floor.SetTableStatus(ctx, 1, floor.SetTableStatusRequest{Status: "RESERVED", ReservationID: "RES999"})
	assert.ErrorIs(t, err, floor.ErrNotFound)

	tb, err := e.floor.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, floor.TableAvailable, tb.Status)
	assert.Empty(t, e.events.Events())
}

func TestPlanStatusChange(t *testing.T) {
	reserved := &floor.Table{ID: 6, Status: floor.TableReserved, ReservationID: "RES001"}
	occupied := &floor.Table{ID: 2, Status: floor.TableOccupied, ReservationID: "RES001"}

	tests := []struct {
		name    string
		current *floor.Table
		next    floor.TableStatus
		resID   string
		want    floor.Change
	}{
		{"reserved to occupied keeps link", reserved, floor.TableOccupied, "", floor.Change{Status: floor.TableOccupied, ReservationID: "RES001"}},
		{"explicit id wins", reserved, floor.TableOccupied, "RES002", floor.Change{Status: floor.TableOccupied, ReservationID: "RES002"}},
		{"available drops link", reserved, floor.TableAvailable, "RES002", floor.Change{Status: floor.TableAvailable}},
		{"occupied to occupied drops link", occupied, floor.TableOccupied, "", floor.Change{Status: floor.TableOccupied}},
		{"reserved to reserved drops link", reserved, floor.TableReserved, "", floor.Change{Status: floor.TableReserved}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, floor.PlanStatusChange(tt.current, tt.next, tt.resID))
		})
	}
}

func TestAssignOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, err := e.orders.CreateOrder(ctx, order.CreateOrderRequest{
		TableNumber: 4,
		Items:       []order.Item{{ID: "6", Name: "Tiramisu", Quantity: 1, Price: 9}},
	})
	require.NoError(t, err)

	tb, err := e.floor.AssignOrder(ctx, 4, floor.AssignOrderRequest{OrderID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, o.ID, tb.OrderID)

	_, err = e.floor.AssignOrder(ctx, 7, floor.AssignOrderRequest{OrderID: o.ID})
	assert.ErrorIs(t, err, floor.ErrValidation, "order placed for another table")

	_, err = e.floor.AssignOrder(ctx, 8, floor.AssignOrderRequest{OrderID: "ORD004"})
	assert.ErrorIs(t, err, floor.ErrValidation, "paid order")

	_, err = e.floor.AssignOrder(ctx, 4, floor.AssignOrderRequest{OrderID: "ORD999"})
	assert.ErrorIs(t, err, floor.ErrNotFound)

	tb, err = e.floor.ClearOrder(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, tb.OrderID)
}

func TestAvailableReservations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ids := func(rs []*floor.Reservation) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	rs, err := e.floor.AvailableReservations(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"RES001"}, ids(rs))

	rs, err = e.floor.AvailableReservations(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, rs)

	e.setStatus(t, 10, floor.TableAvailable, "")
	rs, err = e.floor.AvailableReservations(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"RES002"}, ids(rs))

	_, err = e.floor.AvailableReservations(ctx, 42)
	assert.ErrorIs(t, err, floor.ErrNotFound)
}

func TestReservationLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	r, err := e.floor.UpdateReservationStatus(ctx, "RES001", floor.UpdateReservationStatusRequest{Status: "ARRIVED"})
	require.NoError(t, err)
	assert.Equal(t, floor.ReservationArrived, r.Status)
	require.NotNil(t, r.TableID, "status changes leave the table link alone")

	_, err = e.floor.UpdateReservationStatus(ctx, "RES001", floor.UpdateReservationStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, floor.ErrInvalidTransition)

	r, err = e.floor.ReopenReservation(ctx, "RES001")
	require.NoError(t, err)
	assert.Equal(t, floor.ReservationConfirmed, r.Status)

	_, err = e.floor.ReopenReservation(ctx, "RES001")
	assert.ErrorIs(t, err, floor.ErrInvalidTransition)

	_, err = e.floor.UpdateReservationStatus(ctx, "RES999", floor.UpdateReservationStatusRequest{Status: "ARRIVED"})
	assert.ErrorIs(t, err, floor.ErrNotFound)

	assert.Equal(t, []string{
		events.ReservationStatusChanged,
		events.ReservationStatusChanged,
	}, e.events.Types())
}

func TestCreateReservation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	r, err := e.floor.CreateReservation(ctx, floor.ReservationRequest{
		CustomerName:    "  Emma Leroy ",
		PhoneNumber:     "0600000000",
		GuestCount:      2,
		ReservationTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^RES-\d{8}-[0-9A-F]{8}$`, r.ID)
	assert.Equal(t, "Emma Leroy", r.CustomerName)
	assert.Equal(t, floor.ReservationConfirmed, r.Status)
	assert.Nil(t, r.TableID)

	_, err = e.floor.CreateReservation(ctx, floor.ReservationRequest{CustomerName: "", GuestCount: 2})
	assert.ErrorIs(t, err, floor.ErrValidation)

	all, err := e.floor.ListReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].ReservationTime.Before(all[i-1].ReservationTime))
	}
}

func TestCreateAndResizeTable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tb, err := e.floor.CreateTable(ctx, floor.CreateTableRequest{Capacity: 6})
	require.NoError(t, err)
	assert.Equal(t, 21, tb.ID)
	assert.Equal(t, floor.TableAvailable, tb.Status)

	tb, err = e.floor.UpdateTable(ctx, 21, floor.UpdateTableRequest{Capacity: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, tb.Capacity)

	_, err = e.floor.CreateTable(ctx, floor.CreateTableRequest{Capacity: 0})
	assert.ErrorIs(t, err, floor.ErrValidation)
}
