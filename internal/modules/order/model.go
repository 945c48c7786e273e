package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/money"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrValidation        = errors.New("invalid order")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusPaid       Status = "PAID"
	StatusCancelled  Status = "CANCELLED"
)

// boardSequence is the order of the board columns and of the "next status" action.
var boardSequence = []Status{StatusNew, StatusInProgress, StatusCompleted, StatusPaid}

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusPaid},
	StatusPaid:       {},
	StatusCancelled:  {},
}

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return st, nil
}

// CanTransition returns true if the transition from current to next is valid.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Next returns the status the board's "next status" action moves to.
// Paid and Cancelled have none.
func (s Status) Next() (Status, bool) {
	for i, st := range boardSequence {
		if st == s && i < len(boardSequence)-1 {
			return boardSequence[i+1], true
		}
	}
	return "", false
}

// Open reports whether an order still occupies its table.
func (s Status) Open() bool {
	return s != StatusPaid && s != StatusCancelled
}

// Item is one line of an order. ID references the menu item.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a table's order.
type Order struct {
	ID          string    `json:"id"`
	TableNumber int       `json:"table_number"`
	Items       []Item    `json:"items"`
	Total       float64   `json:"total"`
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// ComputeTotal returns Σ quantity × price over the items, rounded to cents.
func (o *Order) ComputeTotal() float64 {
	lines := make([]float64, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, money.Line(it.Quantity, it.Price))
	}
	return money.Sum(lines...)
}

func (o *Order) clone() *Order {
	c := *o
	c.Items = append([]Item(nil), o.Items...)
	return &c
}

// CreateOrderRequest is the payload for creating a new order.
// Any total sent by the client is ignored; the total is computed from the items.
type CreateOrderRequest struct {
	TableNumber int    `json:"table_number"`
	Items       []Item `json:"items"`
}

// UpdateStatusRequest is the payload for setting an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Filter narrows ListOrders. Zero values match everything.
type Filter struct {
	Status      Status
	TableNumber int
}

func (f Filter) match(o *Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.TableNumber != 0 && o.TableNumber != f.TableNumber {
		return false
	}
	return true
}

// Board is the order board: one column per status of the normal flow.
type Board struct {
	New        []*Order `json:"new"`
	InProgress []*Order `json:"in_progress"`
	Completed  []*Order `json:"completed"`
	Paid       []*Order `json:"paid"`
}
