package settings

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

// Repository stores the single settings record.
type Repository interface {
	// Get returns the stored settings, or Defaults when nothing was saved.
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type memoryRepo struct {
	mu sync.RWMutex
	s  Settings
}

func NewMemoryRepository() Repository { return &memoryRepo{s: Defaults()} }

func (r *memoryRepo) Get(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s, nil
}

func (r *memoryRepo) Save(_ context.Context, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
	return nil
}

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT restaurant_name, address, phone, dark_mode, order_notifications, reservation_notifications
		FROM restaurant_settings WHERE id=1`).
		Scan(&s.RestaurantName, &s.Address, &s.Phone, &s.DarkMode, &s.OrderNotifications, &s.ReservationNotifications)
	if errors.Is(err, sql.ErrNoRows) {
		return Defaults(), nil
	}
	return s, err
}

func (r *postgresRepo) Save(ctx context.Context, s Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurant_settings
			(id, restaurant_name, address, phone, dark_mode, order_notifications, reservation_notifications)
		VALUES (1,$1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			restaurant_name=EXCLUDED.restaurant_name,
			address=EXCLUDED.address,
			phone=EXCLUDED.phone,
			dark_mode=EXCLUDED.dark_mode,
			order_notifications=EXCLUDED.order_notifications,
			reservation_notifications=EXCLUDED.reservation_notifications,
			updated_at=NOW()`,
		s.RestaurantName, s.Address, s.Phone, s.DarkMode, s.OrderNotifications, s.ReservationNotifications)
	return err
}
