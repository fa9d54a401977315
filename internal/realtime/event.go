package realtime

import (
	"time"

	"helpmatch-backend/internal/domain"
)

type EventType string

const (
	EventAuthOK     EventType = "auth_ok"
	EventAuthError  EventType = "auth_error"
	EventNewMessage EventType = "new_message"
	EventNotify     EventType = "notify"
	EventDelivered  EventType = "delivered"
	EventRead       EventType = "read"
	EventReminder   EventType = "reminder"
)

// Event is the closed set of payloads the fan-out engine delivers. Each
// variant carries fixed fields; the transport layer wraps it in an envelope
// with the Type discriminator.
type Event interface {
	Type() EventType
}

// AuthOK acknowledges a successful socket authentication to that session only.
type AuthOK struct {
	UserID int32       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

func (AuthOK) Type() EventType { return EventAuthOK }

type AuthError struct {
	Reason string `json:"reason"`
}

func (AuthError) Type() EventType { return EventAuthError }

// NewMessage is broadcast on the request channel after a chat message is
// persisted. The embedded message carries the server-assigned id and time.
type NewMessage struct {
	Message domain.ChatMessage `json:"message"`
}

func (NewMessage) Type() EventType { return EventNewMessage }

type NotifyKind string

const (
	NotifyMessage            NotifyKind = "message"
	NotifyNewOffer           NotifyKind = "new_offer"
	NotifyOfferAccepted      NotifyKind = "offer_accepted"
	NotifyOfferRejected      NotifyKind = "offer_rejected"
	NotifyAppointmentUpdated NotifyKind = "appointment_updated"
	NotifyRequestCompleted   NotifyKind = "request_completed"
)

// Notify is a direct notification on a user channel about activity on a
// request the user participates in.
type Notify struct {
	Kind             NotifyKind `json:"kind"`
	RequestID        int32      `json:"request_id"`
	FromUserID       int32      `json:"from_user_id,omitempty"`
	AppointmentTime  *time.Time `json:"appointment_time,omitempty"`
	AppointmentPlace *string    `json:"appointment_place,omitempty"`
}

func (Notify) Type() EventType { return EventNotify }

// Delivered acknowledges a persisted chat message to the sending session so
// it can reconcile optimistic UI state against the server-assigned id.
type Delivered struct {
	MessageID int32 `json:"message_id"`
	RequestID int32 `json:"request_id"`
}

func (Delivered) Type() EventType { return EventDelivered }

// Read tells the other participant that a message was read.
type Read struct {
	MessageID int32 `json:"message_id"`
	RequestID int32 `json:"request_id"`
	ByUserID  int32 `json:"by_user_id"`
}

func (Read) Type() EventType { return EventRead }

// Reminder announces an approaching appointment. InMs is the lead window the
// reminder was emitted for, in milliseconds.
type Reminder struct {
	RequestID int32 `json:"request_id"`
	InMs      int64 `json:"in_ms"`
}

func (Reminder) Type() EventType { return EventReminder }
