package settings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("invalid settings")

// Settings are the restaurant-wide preferences shown on the settings page.
type Settings struct {
	RestaurantName           string `json:"restaurant_name"`
	Address                  string `json:"address"`
	Phone                    string `json:"phone"`
	DarkMode                 bool   `json:"dark_mode"`
	OrderNotifications       bool   `json:"order_notifications"`
	ReservationNotifications bool   `json:"reservation_notifications"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		RestaurantName:           "GastroTech Pro",
		Address:                  "123 Rue de la Gastronomie, 75001 Paris",
		Phone:                    "01 23 45 67 89",
		DarkMode:                 true,
		OrderNotifications:       true,
		ReservationNotifications: false,
	}
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.RestaurantName) == "" {
		return fmt.Errorf("%w: restaurant_name is required", ErrValidation)
	}
	return nil
}
