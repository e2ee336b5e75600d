package events

import "time"

type EventType string

const (
	BookingCreated   EventType = "booking.created"
	BookingConfirmed EventType = "booking.confirmed"
	BookingRejected  EventType = "booking.rejected"
	BookingCancelled EventType = "booking.cancelled"
	ServiceConfirmed EventType = "booking_service.confirmed"
	ServiceRejected  EventType = "booking_service.rejected"
	ContractCreated  EventType = "contract.created"
	ContractSigned   EventType = "contract.signed"
)

// Event describes a booking/contract state change. This is the only surface
// the core exposes for notification delivery; actual email/push is external.
type Event struct {
	Type      EventType `json:"type"`
	BookingID int64     `json:"booking_id"`
	UserID    int64     `json:"user_id,omitempty"`
	RoomID    int64     `json:"room_id,omitempty"`
	ServiceID int64     `json:"service_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher fans out state-change events. Implemented by Hub; mutation paths
// depend only on this interface.
type Publisher interface {
	Publish(evt Event)
}

// NopPublisher discards events, for tests and one-shot tooling.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
