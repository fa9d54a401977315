package repository

import (
	"context"
	"errors"
	"time"

	"helpmatch-backend/internal/domain"
)

// ErrConflict is returned when a guarded state transition matched no rows,
// meaning another writer changed the entity first.
var ErrConflict = errors.New("concurrent state change")

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	// GetWithAcceptedVolunteer also resolves the accepted offer's volunteer
	// id, nil when no offer has been accepted yet.
	GetWithAcceptedVolunteer(ctx context.Context, id int32) (*domain.Request, *int32, error)
	// UpdateStatus moves a request between the two given states. The from
	// state is part of the WHERE clause; ErrConflict when no row matched.
	UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error
	SetAppointment(ctx context.Context, id int32, at *time.Time, place *string) error
	// ListUpcomingAppointments returns in-progress requests with a scheduled
	// appointment joined to their accepted volunteer (reminder scan input).
	ListUpcomingAppointments(ctx context.Context) ([]domain.UpcomingAppointment, error)
}

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id int32) (*domain.Offer, error)
	// Accept runs the accept cascade as one transaction: the offer moves
	// pending->accepted, its request moves open->in_progress, and every
	// other pending offer on the request moves to rejected. Returns the
	// rejected siblings. ErrConflict when the offer or request guard
	// matched no rows; nothing is applied in that case.
	Accept(ctx context.Context, offerID, requestID int32) ([]domain.Offer, error)
	Reject(ctx context.Context, offerID int32) error
}

type ChatRepository interface {
	// Create persists the message and fills in the server-assigned ID and
	// SentAt timestamp.
	Create(ctx context.Context, msg *domain.ChatMessage) error
	// MarkRead flips the read flag iff recipientID is the message's
	// recipient. Returns false (no error) when nothing matched.
	MarkRead(ctx context.Context, messageID, recipientID int32) (bool, error)
	ListByRequest(ctx context.Context, requestID int32) ([]domain.ChatMessage, error)
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	GetByReviewer(ctx context.Context, requestID, reviewerID int32) (*domain.Rating, error)
}
