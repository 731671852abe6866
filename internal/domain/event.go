package domain

import (
	"encoding/json"
	"time"
)

// ChangeEventKind вид измененного агрегата
type ChangeEventKind string

const (
	EventKindInterval    ChangeEventKind = "interval"
	EventKindAppointment ChangeEventKind = "appointment"
)

// ChangeEvent represents a committed timeline mutation, recorded for an
// external realtime dispatcher. Delivery semantics (retries, ordering,
// fan-out) belong to the dispatcher, not to this service.
type ChangeEvent struct {
	ID      int64
	EventID string // uuid, ключ сообщения
	OwnerID int64
	Kind    ChangeEventKind
	Payload json.RawMessage

	CreatedAt   time.Time
	PublishedAt *time.Time
}
