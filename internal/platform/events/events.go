package events

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

// Event types published by the back-office modules.
const (
	OrderCreated             = "order.created"
	OrderStatusChanged       = "order.status_changed"
	TableStatusChanged       = "table.status_changed"
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	InventoryRestocked       = "inventory.restocked"
	PurchaseCreated          = "purchase.created"
	PurchaseStatusChanged    = "purchase.status_changed"
)

// Event is a domain change notification.
type Event struct {
	Type       string          `json:"type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// New builds an event, marshalling payload to JSON. A payload that
// cannot be marshalled is dropped.
func New(eventType, entityID string, payload any) Event {
	e := Event{Type: eventType, EntityID: entityID, OccurredAt: time.Now().UTC()}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			e.Payload = b
		}
	}
	return e
}

// Category returns the part of the type before the first dot ("order", "table", ...).
func (e Event) Category() string {
	if i := strings.IndexByte(e.Type, '.'); i >= 0 {
		return e.Type[:i]
	}
	return e.Type
}

// Publisher delivers events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emit publishes e and logs a failure. Mutations never fail because of event delivery.
func Emit(ctx context.Context, pub Publisher, log *logger.Logger, e Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil && log != nil {
		log.Warn("event publish failed", "type", e.Type, "entity_id", e.EntityID, "error", err)
	}
}

// ── log publisher ────────────────────────────────────────────────────────────

type logPublisher struct{ log *logger.Logger }

// NewLogPublisher writes events to the structured log. Used when no broker is configured.
func NewLogPublisher(log *logger.Logger) Publisher { return &logPublisher{log: log} }

func (p *logPublisher) Publish(_ context.Context, e Event) error {
	p.log.Info("event", "type", e.Type, "entity_id", e.EntityID, "payload", string(e.Payload))
	return nil
}

// ── filter ───────────────────────────────────────────────────────────────────

type filtered struct {
	next  Publisher
	allow func(Event) bool
}

// Filter forwards only the events allow accepts.
func Filter(next Publisher, allow func(Event) bool) Publisher {
	return &filtered{next: next, allow: allow}
}

func (f *filtered) Publish(ctx context.Context, e Event) error {
	if !f.allow(e) {
		return nil
	}
	return f.next.Publish(ctx, e)
}

// ── recorder ─────────────────────────────────────────────────────────────────

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []string {
	var types []string
	for _, e := range r.Events() {
		types = append(types, e.Type)
	}
	return types
}
