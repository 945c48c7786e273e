package purchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const purchaseColumns = `id, supplier, items_description, total_cost, purchase_date, status`

func (r *postgresRepo) Create(ctx context.Context, p *Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Supplier, p.ItemsDescription, p.TotalCost, p.PurchaseDate, p.Status)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Purchase, error) {
	return get(ctx, r.db, id)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Purchase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY purchase_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var purchases []*Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Purchase) (*Purchase, error) {
	return r.guarded(ctx, p.ID, func(tx *sql.Tx, current *Purchase) error {
		if current.Status != StatusPending {
			return fmt.Errorf("%w: purchase %s is %s", ErrInvalidTransition, p.ID, current.Status)
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE purchases
			SET supplier=$1, items_description=$2, total_cost=$3, purchase_date=$4, updated_at=NOW()
			WHERE id=$5`,
			p.Supplier, p.ItemsDescription, p.TotalCost, p.PurchaseDate, p.ID)
		return err
	})
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, next Status) (*Purchase, Status, error) {
	var prev Status
	p, err := r.guarded(ctx, id, func(tx *sql.Tx, current *Purchase) error {
		if !CanTransition(current.Status, next) {
			return fmt.Errorf("%w: cannot transition purchase from %s to %s", ErrInvalidTransition, current.Status, next)
		}
		prev = current.Status
		_, err := tx.ExecContext(ctx,
			`UPDATE purchases SET status=$1, updated_at=NOW() WHERE id=$2`, next, id)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return p, prev, nil
}

// guarded locks the purchase row, runs fn and returns the row as committed.
func (r *postgresRepo) guarded(ctx context.Context, id string, fn func(tx *sql.Tx, current *Purchase) error) (*Purchase, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := scanPurchase(tx.QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fn(tx, current); err != nil {
		return nil, err
	}
	p, err := get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	return p, tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func get(ctx context.Context, q querier, id string) (*Purchase, error) {
	p, err := scanPurchase(q.QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func scanPurchase(row database.RowScanner) (*Purchase, error) {
	p := &Purchase{}
	if err := row.Scan(&p.ID, &p.Supplier, &p.ItemsDescription, &p.TotalCost, &p.PurchaseDate, &p.Status); err != nil {
		return nil, err
	}
	return p, nil
}
