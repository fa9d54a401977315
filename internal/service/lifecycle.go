package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/repository"
)

type lifecycleService struct {
	requestRepo repository.RequestRepository
	offerRepo   repository.OfferRepository
	ratingRepo  repository.RatingRepository
	notifier    notifier
}

func NewLifecycleService(
	requestRepo repository.RequestRepository,
	offerRepo repository.OfferRepository,
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	hub realtime.Publisher,
	push PushService,
) LifecycleService {
	return &lifecycleService{
		requestRepo: requestRepo,
		offerRepo:   offerRepo,
		ratingRepo:  ratingRepo,
		notifier:    notifier{hub: hub, push: push, users: userRepo},
	}
}

func (s *lifecycleService) CreateRequest(ctx context.Context, requesterID int32, role domain.Role, description, category, address string) (*domain.Request, error) {
	if role != domain.RoleRequester {
		return nil, ErrForbidden
	}
	if description == "" || category == "" {
		return nil, ErrInvalidInput
	}
	req := &domain.Request{
		RequesterID: requesterID,
		Description: description,
		Category:    category,
		Address:     address,
		Status:      domain.RequestStatusOpen,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *lifecycleService) SubmitOffer(ctx context.Context, volunteerID int32, role domain.Role, requestID int32, message string) (*domain.Offer, error) {
	if role != domain.RoleVolunteer {
		return nil, ErrForbidden
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != domain.RequestStatusOpen {
		return nil, invalidState(req.Status)
	}

	offer := &domain.Offer{
		RequestID:   requestID,
		VolunteerID: volunteerID,
		Message:     message,
		Status:      domain.OfferStatusPending,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.notifier.NotifyUser(ctx, req.RequesterID, realtime.Notify{
		Kind:       realtime.NotifyNewOffer,
		RequestID:  requestID,
		FromUserID: volunteerID,
	})
	return offer, nil
}

func (s *lifecycleService) DecideOffer(ctx context.Context, requesterID, offerID int32, decision Decision) (*domain.Offer, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, ErrInvalidInput
	}
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req, err := s.requestRepo.GetByID(ctx, offer.RequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.RequesterID != requesterID {
		return nil, ErrForbidden
	}

	if decision == DecisionReject {
		if offer.Status != domain.OfferStatusPending {
			return nil, invalidState(offer.Status)
		}
		if err := s.offerRepo.Reject(ctx, offerID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, invalidState(offer.Status)
			}
			return nil, err
		}
		offer.Status = domain.OfferStatusRejected
		s.notifier.NotifyUser(ctx, offer.VolunteerID, realtime.Notify{
			Kind:      realtime.NotifyOfferRejected,
			RequestID: offer.RequestID,
		})
		return offer, nil
	}

	// Accept: legal only while the request is open. The repository runs
	// the cascade as one transaction; of two concurrent accepts exactly
	// one commits and the other maps to InvalidState here.
	if req.Status != domain.RequestStatusOpen {
		return nil, invalidState(req.Status)
	}
	rejected, err := s.offerRepo.Accept(ctx, offerID, offer.RequestID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, invalidState(req.Status)
		}
		return nil, err
	}
	offer.Status = domain.OfferStatusAccepted

	// Mutation committed; everything below is best-effort fan-out.
	s.notifier.NotifyUser(ctx, offer.VolunteerID, realtime.Notify{
		Kind:      realtime.NotifyOfferAccepted,
		RequestID: offer.RequestID,
	})
	for _, sib := range rejected {
		s.notifier.NotifyUser(ctx, sib.VolunteerID, realtime.Notify{
			Kind:      realtime.NotifyOfferRejected,
			RequestID: sib.RequestID,
		})
	}
	return offer, nil
}

func (s *lifecycleService) SetAppointment(ctx context.Context, callerID, requestID int32, at time.Time, place string) error {
	req, volunteerID, err := s.requestRepo.GetWithAcceptedVolunteer(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	isOwner := req.RequesterID == callerID
	if !isOwner {
		if volunteerID == nil {
			return ErrNotFound
		}
		if *volunteerID != callerID {
			return ErrForbidden
		}
	}

	if err := s.requestRepo.SetAppointment(ctx, requestID, &at, &place); err != nil {
		return err
	}

	var counterpart int32
	if isOwner {
		if volunteerID == nil {
			return nil // nobody to notify yet
		}
		counterpart = *volunteerID
	} else {
		counterpart = req.RequesterID
	}
	s.notifier.NotifyUser(ctx, counterpart, realtime.Notify{
		Kind:             realtime.NotifyAppointmentUpdated,
		RequestID:        requestID,
		FromUserID:       callerID,
		AppointmentTime:  &at,
		AppointmentPlace: &place,
	})
	return nil
}

func (s *lifecycleService) ChangeStatus(ctx context.Context, callerID, requestID int32, newStatus domain.RequestStatus) error {
	req, volunteerID, err := s.requestRepo.GetWithAcceptedVolunteer(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if req.RequesterID != callerID {
		return ErrForbidden
	}
	if !domain.ValidRequestTransition(req.Status, newStatus) {
		return invalidState(req.Status)
	}

	// Guarded on the observed prior state so a concurrent transition can
	// not be overwritten.
	if err := s.requestRepo.UpdateStatus(ctx, requestID, req.Status, newStatus); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return invalidState(req.Status)
		}
		return err
	}

	if newStatus == domain.RequestStatusCompleted && volunteerID != nil {
		s.notifier.NotifyUser(ctx, *volunteerID, realtime.Notify{
			Kind:      realtime.NotifyRequestCompleted,
			RequestID: requestID,
		})
	}
	return nil
}

func (s *lifecycleService) SubmitRating(ctx context.Context, callerID int32, role domain.Role, requestID, score int32, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidInput
	}
	req, volunteerID, err := s.requestRepo.GetWithAcceptedVolunteer(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != domain.RequestStatusCompleted {
		return nil, invalidState(req.Status)
	}
	if volunteerID == nil {
		return nil, invalidState(req.Status)
	}

	var rateeID int32
	switch {
	case callerID == req.RequesterID:
		rateeID = *volunteerID
	case role == domain.RoleVolunteer && callerID == *volunteerID:
		rateeID = req.RequesterID
	default:
		return nil, ErrForbidden
	}

	// Idempotent: a repeat call returns the prior rating untouched.
	if existing, err := s.ratingRepo.GetByReviewer(ctx, requestID, callerID); err == nil {
		return existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rating := &domain.Rating{
		RequestID:  requestID,
		ReviewerID: callerID,
		RateeID:    rateeID,
		Score:      score,
		Comment:    comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		// Lost a same-reviewer race past the check above; the stored row
		// is the only rating, return it.
		if errors.Is(err, repository.ErrConflict) {
			return s.ratingRepo.GetByReviewer(ctx, requestID, callerID)
		}
		return nil, err
	}
	return rating, nil
}
