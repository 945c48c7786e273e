package floor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid request")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// TableStatus is the occupancy state of a dining table.
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
)

func ParseTableStatus(s string) (TableStatus, error) {
	st := TableStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case TableAvailable, TableOccupied, TableReserved:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown table status %q", ErrValidation, s)
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationArrived   ReservationStatus = "ARRIVED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// validTransitions lists the status changes UpdateReservationStatus accepts.
// Leaving a terminal status goes through Reopen.
var validTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationConfirmed: {ReservationArrived, ReservationCancelled},
	ReservationArrived:   {},
	ReservationCancelled: {},
}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: unknown reservation status %q", ErrValidation, s)
	}
	return st, nil
}

// CanTransition returns true if the transition from current to next is valid.
func CanTransition(current, next ReservationStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no regular transition leaves s.
func (s ReservationStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Table is a dining table. ReservationID is never stored on the table: it is
// the id of the reservation whose TableID points here.
type Table struct {
	ID            int         `json:"id"`
	Status        TableStatus `json:"status"`
	Capacity      int         `json:"capacity"`
	OrderID       string      `json:"order_id,omitempty"`
	ReservationID string      `json:"reservation_id,omitempty"`
}

// Reservation is a booking, optionally linked to one table.
type Reservation struct {
	ID              string            `json:"id"`
	CustomerName    string            `json:"customer_name"`
	PhoneNumber     string            `json:"phone_number"`
	GuestCount      int               `json:"guest_count"`
	ReservationTime time.Time         `json:"reservation_time"`
	Status          ReservationStatus `json:"status"`
	TableID         *int              `json:"table_id,omitempty"`
}

func (r *Reservation) clone() *Reservation {
	c := *r
	if r.TableID != nil {
		id := *r.TableID
		c.TableID = &id
	}
	return &c
}

// LinkedTo reports whether r is linked to the given table.
func (r *Reservation) LinkedTo(tableID int) bool {
	return r.TableID != nil && *r.TableID == tableID
}

// Change is the outcome of a status change on one table: its new status and
// the reservation that should be linked to it afterwards ("" for none).
type Change struct {
	Status        TableStatus
	ReservationID string
}

// PlanStatusChange applies the linkage rules to the table's current state.
//
// Available never carries a reservation. Otherwise the supplied reservation
// becomes the table's link, except that a Reserved table turning Occupied
// without an explicit reservation keeps the one it had.
func PlanStatusChange(current *Table, next TableStatus, reservationID string) Change {
	c := Change{Status: next}
	switch {
	case next == TableAvailable:
	case reservationID != "":
		c.ReservationID = reservationID
	case current.Status == TableReserved && next == TableOccupied:
		c.ReservationID = current.ReservationID
	}
	return c
}

// ── requests ─────────────────────────────────────────────────────────────────

type CreateTableRequest struct {
	Capacity int `json:"capacity"`
}

type UpdateTableRequest struct {
	Capacity int `json:"capacity"`
}

type SetTableStatusRequest struct {
	Status        string `json:"status"`
	ReservationID string `json:"reservation_id,omitempty"`
}

type AssignOrderRequest struct {
	OrderID string `json:"order_id"`
}

// ReservationRequest carries the editable details of a reservation.
type ReservationRequest struct {
	CustomerName    string    `json:"customer_name"`
	PhoneNumber     string    `json:"phone_number"`
	GuestCount      int       `json:"guest_count"`
	ReservationTime time.Time `json:"reservation_time"`
}

func (req ReservationRequest) validate() error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if req.GuestCount < 1 {
		return fmt.Errorf("%w: guest_count must be >= 1", ErrValidation)
	}
	if req.ReservationTime.IsZero() {
		return fmt.Errorf("%w: reservation_time is required", ErrValidation)
	}
	return nil
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status"`
}
