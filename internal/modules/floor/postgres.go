package floor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const tableView = `
	SELECT t.id, t.status, t.capacity, t.order_id, r.id
	FROM dining_tables t
	LEFT JOIN reservations r ON r.table_id = t.id`

const reservationColumns = `id, customer_name, phone_number, guest_count, reservation_time, status, table_id`

func (r *postgresRepo) CreateTable(ctx context.Context, t *Table) error {
	if t.ID != 0 {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO dining_tables (id, status, capacity, order_id)
			VALUES ($1,$2,$3,$4)`,
			t.ID, t.Status, t.Capacity, database.NullString(t.OrderID))
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO dining_tables (id, status, capacity, order_id)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM dining_tables), $1, $2, $3)
		RETURNING id`,
		t.Status, t.Capacity, database.NullString(t.OrderID)).Scan(&t.ID)
}

func (r *postgresRepo) GetTable(ctx context.Context, id int) (*Table, error) {
	return getTable(ctx, r.db, id)
}

func (r *postgresRepo) ListTables(ctx context.Context) ([]*Table, error) {
	rows, err := r.db.QueryContext(ctx, tableView+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables []*Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *postgresRepo) UpdateCapacity(ctx context.Context, id, capacity int) (*Table, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dining_tables SET capacity=$1, updated_at=NOW() WHERE id=$2`, capacity, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, id)
	}
	return r.GetTable(ctx, id)
}

func (r *postgresRepo) SetOrder(ctx context.Context, tableID int, orderID string) (*Table, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dining_tables SET order_id=$1, updated_at=NOW() WHERE id=$2`,
		database.NullString(orderID), tableID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
	}
	return r.GetTable(ctx, tableID)
}

// SetStatus locks the table row and every reservation row it touches, then
// rewrites the link in one transaction.
func (r *postgresRepo) SetStatus(ctx context.Context, tableID int, plan func(*Table) (Change, error)) (*Table, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var locked int
	err = tx.QueryRowContext(ctx, `SELECT id FROM dining_tables WHERE id=$1 FOR UPDATE`, tableID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
	}
	if err != nil {
		return nil, err
	}
	current, err := getTable(ctx, tx, tableID)
	if err != nil {
		return nil, err
	}
	change, err := plan(current)
	if err != nil {
		return nil, err
	}

	if change.ReservationID != "" {
		var id string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM reservations WHERE id=$1 FOR UPDATE`, change.ReservationID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, change.ReservationID)
		}
		if err != nil {
			return nil, err
		}
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE reservations SET table_id=NULL, updated_at=NOW()
		WHERE table_id=$1 AND id <> $2`, tableID, change.ReservationID); err != nil {
		return nil, fmt.Errorf("unlink reservation: %w", err)
	}
	if change.ReservationID != "" {
		if _, err = tx.ExecContext(ctx, `
			UPDATE reservations SET table_id=$1, updated_at=NOW() WHERE id=$2`,
			tableID, change.ReservationID); err != nil {
			return nil, fmt.Errorf("link reservation: %w", err)
		}
	}

	query := `UPDATE dining_tables SET status=$1, updated_at=NOW() WHERE id=$2`
	if change.Status == TableAvailable {
		query = `UPDATE dining_tables SET status=$1, order_id=NULL, updated_at=NOW() WHERE id=$2`
	}
	if _, err = tx.ExecContext(ctx, query, change.Status, tableID); err != nil {
		return nil, fmt.Errorf("update table: %w", err)
	}

	t, err := getTable(ctx, tx, tableID)
	if err != nil {
		return nil, err
	}
	return t, tx.Commit()
}

func (r *postgresRepo) CreateReservation(ctx context.Context, res *Reservation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		res.ID, res.CustomerName, res.PhoneNumber, res.GuestCount, res.ReservationTime,
		res.Status, nullTableID(res.TableID))
	return err
}

func (r *postgresRepo) GetReservation(ctx context.Context, id string) (*Reservation, error) {
	return getReservation(ctx, r.db, id)
}

func (r *postgresRepo) ListReservations(ctx context.Context) ([]*Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY reservation_time ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateReservation(ctx context.Context, in *Reservation) (*Reservation, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reservations
		SET customer_name=$1, phone_number=$2, guest_count=$3, reservation_time=$4, updated_at=NOW()
		WHERE id=$5`,
		in.CustomerName, in.PhoneNumber, in.GuestCount, in.ReservationTime, in.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, in.ID)
	}
	return r.GetReservation(ctx, in.ID)
}

func (r *postgresRepo) UpdateReservationStatus(ctx context.Context, id string, check func(ReservationStatus) (ReservationStatus, error)) (*Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current ReservationStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	next, err := check(current)
	if err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status=$1, updated_at=NOW() WHERE id=$2`, next, id); err != nil {
		return nil, err
	}
	res, err := getReservation(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	return res, tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func getTable(ctx context.Context, q querier, id int) (*Table, error) {
	t, err := scanTable(q.QueryRowContext(ctx, tableView+` WHERE t.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, id)
	}
	return t, err
}

func scanTable(row database.RowScanner) (*Table, error) {
	t := &Table{}
	var orderID, reservationID sql.NullString
	if err := row.Scan(&t.ID, &t.Status, &t.Capacity, &orderID, &reservationID); err != nil {
		return nil, err
	}
	t.OrderID = orderID.String
	t.ReservationID = reservationID.String
	return t, nil
}

func getReservation(ctx context.Context, q querier, id string) (*Reservation, error) {
	res, err := scanReservation(q.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}
	return res, err
}

func scanReservation(row database.RowScanner) (*Reservation, error) {
	res := &Reservation{}
	var tableID sql.NullInt64
	if err := row.Scan(&res.ID, &res.CustomerName, &res.PhoneNumber, &res.GuestCount,
		&res.ReservationTime, &res.Status, &tableID); err != nil {
		return nil, err
	}
	if tableID.Valid {
		id := int(tableID.Int64)
		res.TableID = &id
	}
	return res, nil
}

func nullTableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
