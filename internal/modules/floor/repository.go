package floor

import "context"

// Repository defines data access for tables and reservations. Both live
// behind one repository so the linkage update is a single atomic step.
type Repository interface {
	// CreateTable stores t. A zero ID is replaced by max(id)+1.
	CreateTable(ctx context.Context, t *Table) error
	GetTable(ctx context.Context, id int) (*Table, error)
	ListTables(ctx context.Context) ([]*Table, error)
	UpdateCapacity(ctx context.Context, id, capacity int) (*Table, error)

	// SetOrder links orderID to the table; "" clears the link.
	SetOrder(ctx context.Context, tableID int, orderID string) (*Table, error)

	// SetStatus calls plan with the table's current state and applies the
	// returned change atomically: the table status, the order link cleared
	// on Available, the stale reservation unlinked and the new one linked.
	SetStatus(ctx context.Context, tableID int, plan func(current *Table) (Change, error)) (*Table, error)

	// CreateReservation stores r. A non-nil TableID must reference a table
	// that has no other reservation.
	CreateReservation(ctx context.Context, r *Reservation) error
	GetReservation(ctx context.Context, id string) (*Reservation, error)

	// ListReservations returns reservations by reservation time ascending.
	ListReservations(ctx context.Context) ([]*Reservation, error)

	// UpdateReservation replaces the details of r. Status and table link are untouched.
	UpdateReservation(ctx context.Context, r *Reservation) (*Reservation, error)

	// UpdateReservationStatus sets the status to the value check returns for
	// the current one, under the same lock.
	UpdateReservationStatus(ctx context.Context, id string, check func(current ReservationStatus) (ReservationStatus, error)) (*Reservation, error)
}
