package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const memberColumns = `id, name, role, hourly_rate, status`

func (r *postgresRepo) Create(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff_members (`+memberColumns+`)
		VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.Name, m.Role, m.HourlyRate, m.Status)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	return r.one(ctx, `SELECT `+memberColumns+` FROM staff_members WHERE id=$1`, id)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM staff_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, m *Member) (*Member, error) {
	return r.one(ctx, `
		UPDATE staff_members SET name=$1, role=$2, hourly_rate=$3, updated_at=NOW()
		WHERE id=$4
		RETURNING `+memberColumns,
		m.Name, m.Role, m.HourlyRate, m.ID)
}

func (r *postgresRepo) ToggleStatus(ctx context.Context, id string) (*Member, error) {
	return r.one(ctx, `
		UPDATE staff_members
		SET status = CASE WHEN status = $1 THEN $2 ELSE $1 END, updated_at=NOW()
		WHERE id=$3
		RETURNING `+memberColumns,
		string(StatusActive), string(StatusInactive), id)
}

func (r *postgresRepo) one(ctx context.Context, query string, args ...interface{}) (*Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func scanMember(row database.RowScanner) (*Member, error) {
	m := &Member{}
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.HourlyRate, &m.Status); err != nil {
		return nil, err
	}
	return m, nil
}
