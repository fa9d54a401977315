package service

import (
	"context"
	"database/sql"
	"errors"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/repository"
)

type chatService struct {
	chatRepo    repository.ChatRepository
	requestRepo repository.RequestRepository
	notifier    notifier
}

func NewChatService(
	chatRepo repository.ChatRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	hub realtime.Publisher,
	push PushService,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		requestRepo: requestRepo,
		notifier:    notifier{hub: hub, push: push, users: userRepo},
	}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, requestID, recipientID int32, body string) (*domain.ChatMessage, error) {
	if body == "" {
		return nil, ErrInvalidInput
	}
	req, volunteerID, err := s.requestRepo.GetWithAcceptedVolunteer(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// The only valid pairing is the requester and the accepted volunteer,
	// in either direction.
	if volunteerID == nil {
		return nil, ErrForbidden
	}
	requesterToVolunteer := senderID == req.RequesterID && recipientID == *volunteerID
	volunteerToRequester := senderID == *volunteerID && recipientID == req.RequesterID
	if !requesterToVolunteer && !volunteerToRequester {
		return nil, ErrForbidden
	}

	msg := &domain.ChatMessage{
		RequestID:   requestID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifier.hub.Publish(realtime.RequestChannel(requestID), realtime.NewMessage{Message: *msg})
	s.notifier.NotifyUser(ctx, recipientID, realtime.Notify{
		Kind:       realtime.NotifyMessage,
		RequestID:  requestID,
		FromUserID: senderID,
	})
	return msg, nil
}

// MarkRead suppresses not-found and wrong-recipient outcomes: read receipts
// are not security-sensitive and a stale receipt is harmless.
func (s *chatService) MarkRead(ctx context.Context, readerID, messageID, requestID int32) error {
	flipped, err := s.chatRepo.MarkRead(ctx, messageID, readerID)
	if err != nil {
		return err
	}
	if !flipped {
		return nil
	}
	s.notifier.hub.Publish(realtime.RequestChannel(requestID), realtime.Read{
		MessageID: messageID,
		RequestID: requestID,
		ByUserID:  readerID,
	})
	return nil
}

func (s *chatService) History(ctx context.Context, callerID, requestID int32) ([]domain.ChatMessage, error) {
	req, volunteerID, err := s.requestRepo.GetWithAcceptedVolunteer(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	isOwner := callerID == req.RequesterID
	isVolunteer := volunteerID != nil && callerID == *volunteerID
	if !isOwner && !isVolunteer {
		return nil, ErrForbidden
	}
	return s.chatRepo.ListByRequest(ctx, requestID)
}
