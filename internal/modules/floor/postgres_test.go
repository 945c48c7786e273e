package floor_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gastrotech-backend/internal/modules/floor"
)

var (
	lockTable       = regexp.QuoteMeta(`SELECT id FROM dining_tables WHERE id=$1 FOR UPDATE`)
	selectTable     = regexp.QuoteMeta(`SELECT t.id, t.status, t.capacity, t.order_id, r.id FROM dining_tables t LEFT JOIN reservations r ON r.table_id = t.id WHERE t.id=$1`)
	lockReservation = regexp.QuoteMeta(`SELECT id FROM reservations WHERE id=$1 FOR UPDATE`)
	unlinkOthers    = regexp.QuoteMeta(`UPDATE reservations SET table_id=NULL, updated_at=NOW() WHERE table_id=$1 AND id <> $2`)
	linkReservation = regexp.QuoteMeta(`UPDATE reservations SET table_id=$1, updated_at=NOW() WHERE id=$2`)
	updateStatus    = regexp.QuoteMeta(`UPDATE dining_tables SET status=$1, updated_at=NOW() WHERE id=$2`)
	releaseTable    = regexp.QuoteMeta(`UPDATE dining_tables SET status=$1, order_id=NULL, updated_at=NOW() WHERE id=$2`)
)

var tableColumns = []string{"id", "status", "capacity", "order_id", "id"}

func newMockRepo(t *testing.T) (floor.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return floor.NewPostgresRepository(db), mock
}

func plan(c floor.Change) func(*floor.Table) (floor.Change, error) {
	return func(*floor.Table) (floor.Change, error) { return c, nil }
}

func TestPostgresSetStatusRelinksInOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockTable).WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(selectTable).WithArgs(10).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(10, "RESERVED", 6, nil, "RES002"))
	mock.ExpectQuery(lockReservation).WithArgs("RES001").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("RES001"))
	mock.ExpectExec(unlinkOthers).WithArgs(10, "RES001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(linkReservation).WithArgs(10, "RES001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateStatus).WithArgs("OCCUPIED", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectTable).WithArgs(10).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(10, "OCCUPIED", 6, nil, "RES001"))
	mock.ExpectCommit()

	tbl, err := repo.SetStatus(context.Background(), 10, plan(floor.Change{Status: floor.TableOccupied, ReservationID: "RES001"}))
	require.NoError(t, err)
	assert.Equal(t, floor.TableOccupied, tbl.Status)
	assert.Equal(t, "RES001", tbl.ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetStatusAvailableClearsOrderAndLinks(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockTable).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(selectTable).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(2, "OCCUPIED", 4, "ORD002", nil))
	mock.ExpectExec(unlinkOthers).WithArgs(2, "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(releaseTable).WithArgs("AVAILABLE", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectTable).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(2, "AVAILABLE", 4, nil, nil))
	mock.ExpectCommit()

	tbl, err := repo.SetStatus(context.Background(), 2, plan(floor.Change{Status: floor.TableAvailable}))
	require.NoError(t, err)
	assert.Equal(t, floor.TableAvailable, tbl.Status)
	assert.Empty(t, tbl.OrderID)
	assert.Empty(t, tbl.ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetStatusMissingReservationRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockTable).WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectQuery(selectTable).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(6, "RESERVED", 4, nil, "RES001"))
	mock.ExpectQuery(lockReservation).WithArgs("RES999").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.SetStatus(context.Background(), 6, plan(floor.Change{Status: floor.TableReserved, ReservationID: "RES999"}))
	assert.ErrorIs(t, err, floor.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetStatusPlanErrorRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockTable).WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectQuery(selectTable).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(6, "RESERVED", 4, nil, "RES001"))
	mock.ExpectRollback()

	_, err := repo.SetStatus(context.Background(), 6, func(*floor.Table) (floor.Change, error) {
		return floor.Change{}, floor.ErrValidation
	})
	assert.ErrorIs(t, err, floor.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetStatusUnknownTable(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockTable).WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.SetStatus(context.Background(), 99, plan(floor.Change{Status: floor.TableOccupied}))
	assert.ErrorIs(t, err, floor.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
