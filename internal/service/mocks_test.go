package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/realtime"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) GetWithAcceptedVolunteer(ctx context.Context, id int32) (*domain.Request, *int32, error) {
	args := m.Called(ctx, id)
	var req *domain.Request
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.Request)
	}
	var vid *int32
	if args.Get(1) != nil {
		vid = args.Get(1).(*int32)
	}
	return req, vid, args.Error(2)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockRequestRepo) SetAppointment(ctx context.Context, id int32, at *time.Time, place *string) error {
	args := m.Called(ctx, id, at, place)
	return args.Error(0)
}
func (m *MockRequestRepo) ListUpcomingAppointments(ctx context.Context) ([]domain.UpcomingAppointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UpcomingAppointment), args.Error(1)
}

// MockOfferRepo
type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) Accept(ctx context.Context, offerID, requestID int32) ([]domain.Offer, error) {
	args := m.Called(ctx, offerID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) Reject(ctx context.Context, offerID int32) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}

// MockChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockChatRepo) MarkRead(ctx context.Context, messageID, recipientID int32) (bool, error) {
	args := m.Called(ctx, messageID, recipientID)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepo) ListByRequest(ctx context.Context, requestID int32) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

// MockRatingRepo
type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) Create(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}
func (m *MockRatingRepo) GetByReviewer(ctx context.Context, requestID, reviewerID int32) (*domain.Rating, error) {
	args := m.Called(ctx, requestID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

// MockPublisher records fan-out without a live hub.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ch realtime.Channel, ev realtime.Event) {
	m.Called(ch, ev)
}
func (m *MockPublisher) Connected(userID int32) bool {
	args := m.Called(userID)
	return args.Bool(0)
}
