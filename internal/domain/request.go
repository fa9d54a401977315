package domain

import "time"

type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "open"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// Request is a unit of assistance created by a requester. Status transitions
// are owned by the lifecycle service; nothing else writes the status column.
type Request struct {
	ID          int32         `json:"id"`
	RequesterID int32         `json:"requester_id"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Address     string        `json:"address,omitempty"`
	Status      RequestStatus `json:"status"`
	// Appointment fields are nil until the participants coordinate one.
	AppointmentTime  *time.Time `json:"appointment_time,omitempty"`
	AppointmentPlace *string    `json:"appointment_place,omitempty"`
	CreatedOn        string     `json:"created_on"`
	UpdatedOn        string     `json:"updated_on"`
}

// ValidRequestTransition reports whether a request may move between the two
// states. Backward moves and the open->completed shortcut are rejected.
func ValidRequestTransition(from, to RequestStatus) bool {
	switch from {
	case RequestStatusOpen:
		return to == RequestStatusInProgress
	case RequestStatusInProgress:
		return to == RequestStatusCompleted
	default:
		return false
	}
}
