package service

import (
	"context"
	"time"

	"helpmatch-backend/internal/domain"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type AuthService interface {
	// Login verifies the password and issues a signed credential token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type LifecycleService interface {
	CreateRequest(ctx context.Context, requesterID int32, role domain.Role, description, category, address string) (*domain.Request, error)
	SubmitOffer(ctx context.Context, volunteerID int32, role domain.Role, requestID int32, message string) (*domain.Offer, error)
	DecideOffer(ctx context.Context, requesterID, offerID int32, decision Decision) (*domain.Offer, error)
	SetAppointment(ctx context.Context, callerID, requestID int32, at time.Time, place string) error
	ChangeStatus(ctx context.Context, callerID, requestID int32, newStatus domain.RequestStatus) error
	SubmitRating(ctx context.Context, callerID int32, role domain.Role, requestID, score int32, comment string) (*domain.Rating, error)
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID, requestID, recipientID int32, body string) (*domain.ChatMessage, error)
	// MarkRead is a silent no-op when the message does not exist or the
	// reader is not its recipient.
	MarkRead(ctx context.Context, readerID, messageID, requestID int32) error
	History(ctx context.Context, callerID, requestID int32) ([]domain.ChatMessage, error)
}

// EmailService sends appointment reminder mail. Best-effort alongside the
// real-time reminder.
type EmailService interface {
	SendAppointmentReminder(ctx context.Context, toEmail, toName string, requestID int32, at time.Time) error
}

// PushService delivers a notification to a device when the user has no
// connected session.
type PushService interface {
	Send(ctx context.Context, deviceToken string, kind string, requestID int32) error
}
