package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/service"
)

func newChatFixture() (*MockChatRepo, *MockRequestRepo, *MockPublisher, service.ChatService) {
	chatRepo := new(MockChatRepo)
	requestRepo := new(MockRequestRepo)
	userRepo := new(MockUserRepo)
	hub := new(MockPublisher)
	svc := service.NewChatService(chatRepo, requestRepo, userRepo, hub, nil)
	return chatRepo, requestRepo, hub, svc
}

func TestChatService_SendMessage(t *testing.T) {
	chatRepo, requestRepo, hub, svc := newChatFixture()
	ctx := context.Background()
	volunteerID := int32(2)
	paired := &domain.Request{ID: 10, RequesterID: 1, Status: domain.RequestStatusInProgress}

	t.Run("Requester To Accepted Volunteer", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		chatRepo.ExpectedCalls = nil
		hub.ExpectedCalls = nil
		hub.Calls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(10)).Return(paired, &volunteerID, nil)
		chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.ChatMessage")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ChatMessage).ID = 55
		}).Return(nil)
		hub.On("Publish", mock.Anything, mock.Anything).Return()

		msg, err := svc.SendMessage(ctx, 1, 10, 2, "running ten minutes late")
		assert.NoError(t, err)
		assert.Equal(t, int32(55), msg.ID)

		// Broadcast on the request channel plus a direct notify to the
		// recipient's user channel.
		hub.AssertCalled(t, "Publish", realtime.RequestChannel(10), realtime.NewMessage{Message: *msg})
		hub.AssertCalled(t, "Publish", realtime.UserChannel(2), realtime.Notify{
			Kind:       realtime.NotifyMessage,
			RequestID:  10,
			FromUserID: 1,
		})
	})

	t.Run("Volunteer To Requester", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		chatRepo.ExpectedCalls = nil
		hub.ExpectedCalls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(10)).Return(paired, &volunteerID, nil)
		chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.ChatMessage")).Return(nil)
		hub.On("Publish", mock.Anything, mock.Anything).Return()

		_, err := svc.SendMessage(ctx, 2, 10, 1, "no problem")
		assert.NoError(t, err)
	})

	t.Run("Unpaired Recipient Forbidden", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		chatRepo.ExpectedCalls = nil
		chatRepo.Calls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(10)).Return(paired, &volunteerID, nil)

		_, err := svc.SendMessage(ctx, 1, 10, 9, "hello stranger")
		assert.ErrorIs(t, err, service.ErrForbidden)
		chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("No Accepted Volunteer Forbidden", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(11)).Return(&domain.Request{ID: 11, RequesterID: 1, Status: domain.RequestStatusOpen}, nil, nil)

		_, err := svc.SendMessage(ctx, 1, 11, 2, "anyone there")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Empty Body", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, 1, 10, 2, "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Request Missing", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(99)).Return(nil, nil, sql.ErrNoRows)

		_, err := svc.SendMessage(ctx, 1, 99, 2, "hello")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestChatService_MarkRead(t *testing.T) {
	chatRepo, _, hub, svc := newChatFixture()
	ctx := context.Background()

	t.Run("Read Receipt Broadcast", func(t *testing.T) {
		chatRepo.ExpectedCalls = nil
		hub.ExpectedCalls = nil
		hub.Calls = nil
		chatRepo.On("MarkRead", ctx, int32(55), int32(2)).Return(true, nil)
		hub.On("Publish", mock.Anything, mock.Anything).Return()

		err := svc.MarkRead(ctx, 2, 55, 10)
		assert.NoError(t, err)
		hub.AssertCalled(t, "Publish", realtime.RequestChannel(10), realtime.Read{
			MessageID: 55,
			RequestID: 10,
			ByUserID:  2,
		})
	})

	t.Run("Wrong Recipient Is Silent", func(t *testing.T) {
		chatRepo.ExpectedCalls = nil
		hub.ExpectedCalls = nil
		hub.Calls = nil
		chatRepo.On("MarkRead", ctx, int32(55), int32(9)).Return(false, nil)

		err := svc.MarkRead(ctx, 9, 55, 10)
		assert.NoError(t, err)
		assert.Empty(t, hub.Calls)
	})
}

func TestChatService_History(t *testing.T) {
	chatRepo, requestRepo, _, svc := newChatFixture()
	ctx := context.Background()
	volunteerID := int32(2)
	paired := &domain.Request{ID: 10, RequesterID: 1, Status: domain.RequestStatusInProgress}

	t.Run("Participant Reads History", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		chatRepo.ExpectedCalls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(10)).Return(paired, &volunteerID, nil)
		chatRepo.On("ListByRequest", ctx, int32(10)).Return([]domain.ChatMessage{
			{ID: 1, RequestID: 10, SenderID: 1, RecipientID: 2, Body: "hi"},
			{ID: 2, RequestID: 10, SenderID: 2, RecipientID: 1, Body: "hello"},
		}, nil)

		msgs, err := svc.History(ctx, 2, 10)
		assert.NoError(t, err)
		assert.Len(t, msgs, 2)
	})

	t.Run("Outsider Forbidden", func(t *testing.T) {
		requestRepo.ExpectedCalls = nil
		requestRepo.On("GetWithAcceptedVolunteer", ctx, int32(10)).Return(paired, &volunteerID, nil)

		_, err := svc.History(ctx, 9, 10)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}
