package purchase

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("purchase not found")
	ErrValidation        = errors.New("invalid purchase")
	ErrInvalidTransition = errors.New("invalid purchase status transition")
)

// Status represents the lifecycle state of a supplier purchase.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions defines the allowed state machine transitions for purchases.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition returns true if the transition from current to next is valid.
func CanTransition(current, next Status) bool {
	allowed, ok := validTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return st, nil
}

// Purchase is a supply order placed with a supplier.
type Purchase struct {
	ID               string    `json:"id"`
	Supplier         string    `json:"supplier"`
	ItemsDescription string    `json:"items_description"`
	TotalCost        float64   `json:"total_cost"`
	PurchaseDate     time.Time `json:"purchase_date"`
	Status           Status    `json:"status"`
}

// PurchaseRequest holds the editable details of a purchase. A zero
// PurchaseDate means now.
type PurchaseRequest struct {
	Supplier         string    `json:"supplier"`
	ItemsDescription string    `json:"items_description"`
	TotalCost        float64   `json:"total_cost"`
	PurchaseDate     time.Time `json:"purchase_date"`
}

func (req PurchaseRequest) validate() error {
	if strings.TrimSpace(req.Supplier) == "" {
		return fmt.Errorf("%w: supplier is required", ErrValidation)
	}
	if req.TotalCost < 0 {
		return fmt.Errorf("%w: total_cost cannot be negative", ErrValidation)
	}
	return nil
}

// UpdateStatusRequest is the payload for completing or cancelling a purchase.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
