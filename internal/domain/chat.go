package domain

import "time"

// ChatMessage is immutable once written except for the Read flag, which only
// the recipient may flip. ID and SentAt are server-assigned; client-supplied
// timestamps are never trusted.
type ChatMessage struct {
	ID          int32     `json:"id"`
	RequestID   int32     `json:"request_id"`
	SenderID    int32     `json:"sender_id"`
	RecipientID int32     `json:"recipient_id"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	SentAt      time.Time `json:"sent_at"`
}
