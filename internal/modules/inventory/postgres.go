package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const itemColumns = `id, name, stock, unit, low_stock_threshold`

func (r *postgresRepo) Create(ctx context.Context, it *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5)`,
		it.ID, it.Name, it.Stock, it.Unit, it.LowStockThreshold)
	if err != nil && isDuplicateKey(err) {
		return fmt.Errorf("%w: duplicate id %s", ErrValidation, it.ID)
	}
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, it *Item) (*Item, error) {
	return r.one(ctx, `
		UPDATE inventory_items
		SET name=$1, stock=$2, unit=$3, low_stock_threshold=$4, updated_at=NOW()
		WHERE id=$5
		RETURNING `+itemColumns,
		it.Name, it.Stock, it.Unit, it.LowStockThreshold, it.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddStock(ctx context.Context, id string, quantity float64) (*Item, error) {
	return r.one(ctx, `
		UPDATE inventory_items SET stock = stock + $1, updated_at=NOW()
		WHERE id=$2
		RETURNING `+itemColumns, quantity, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) one(ctx context.Context, query string, args ...interface{}) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func scanItem(row database.RowScanner) (*Item, error) {
	it := &Item{}
	if err := row.Scan(&it.ID, &it.Name, &it.Stock, &it.Unit, &it.LowStockThreshold); err != nil {
		return nil, err
	}
	it.Status = DeriveStatus(it.Stock, it.LowStockThreshold)
	return it, nil
}

// isDuplicateKey returns true when the error is a PostgreSQL unique constraint violation (code 23505).
func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")
}
