package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// Service reads and updates the restaurant settings.
type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)

	// AllowEvent reports whether the notification toggles let e through.
	// Order events follow OrderNotifications, reservation events follow
	// ReservationNotifications, everything else is always allowed.
	AllowEvent(e events.Event) bool
}

type service struct {
	repo Repository
	log  *logger.Logger

	mu     sync.RWMutex
	cached *Settings
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log.WithComponent("settings")}
}

func (s *service) Get(ctx context.Context) (Settings, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	st, err := s.repo.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	s.cached = &st
	s.mu.Unlock()
	return st, nil
}

func (s *service) Update(ctx context.Context, in Settings) (Settings, error) {
	in.RestaurantName = strings.TrimSpace(in.RestaurantName)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := in.validate(); err != nil {
		return Settings{}, err
	}
	if err := s.repo.Save(ctx, in); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	s.cached = &in
	s.mu.Unlock()
	s.log.Info("settings updated",
		"order_notifications", in.OrderNotifications,
		"reservation_notifications", in.ReservationNotifications)
	return in, nil
}

func (s *service) AllowEvent(e events.Event) bool {
	st, err := s.Get(context.Background())
	if err != nil {
		s.log.Warn("settings unavailable, event allowed", "type", e.Type, "error", err)
		return true
	}
	switch e.Category() {
	case "order":
		return st.OrderNotifications
	case "reservation":
		return st.ReservationNotifications
	}
	return true
}
