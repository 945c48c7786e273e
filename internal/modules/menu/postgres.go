package menu

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, it *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, price, category, image_url)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		it.ID, it.Name, it.Description, it.Price, it.Category, it.ImageURL)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, category, image_url
		FROM menu_items WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *postgresRepo) List(ctx context.Context, category Category) ([]*Item, error) {
	query := `SELECT id, name, description, price, category, image_url FROM menu_items`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category=$1`
		args = append(args, category)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return lessID(items[i].ID, items[j].ID) })
	return items, nil
}

func (r *postgresRepo) Update(ctx context.Context, it *Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET name=$1, description=$2, price=$3, category=$4, image_url=$5, updated_at=NOW()
		WHERE id=$6`,
		it.Name, it.Description, it.Price, it.Category, it.ImageURL, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItem(row database.RowScanner) (*Item, error) {
	it := &Item{}
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.ImageURL); err != nil {
		return nil, err
	}
	return it, nil
}
