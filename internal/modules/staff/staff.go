package staff

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("staff member not found")
	ErrValidation = errors.New("invalid staff member")
)

// Role is a staff member's job on the floor or in the kitchen.
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleWaiter    Role = "WAITER"
	RoleCook      Role = "COOK"
	RoleBartender Role = "BARTENDER"
)

// Status is toggled freely between active and inactive.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Member represents an employee of the restaurant.
type Member struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       Role    `json:"role"`
	HourlyRate float64 `json:"hourly_rate"`
	Status     Status  `json:"status"`
}

// MemberRequest holds the editable fields of a staff member.
type MemberRequest struct {
	Name       string  `json:"name"`
	Role       Role    `json:"role"`
	HourlyRate float64 `json:"hourly_rate"`
}

func (req MemberRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	switch req.Role {
	case RoleManager, RoleWaiter, RoleCook, RoleBartender:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if req.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly_rate cannot be negative", ErrValidation)
	}
	return nil
}
