package realtime_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/realtime"
)

// fakeSession records delivered events; full mimics a saturated send queue.
type fakeSession struct {
	id     string
	full   bool
	mu     sync.Mutex
	events []realtime.Event
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Deliver(ev realtime.Event) bool {
	if s.full {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return true
}

func (s *fakeSession) received() []realtime.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]realtime.Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestHub_AuthenticateSubscribesUserChannel(t *testing.T) {
	hub := realtime.NewHub()
	s := &fakeSession{id: "s1"}

	hub.Authenticate(s, 7, domain.RoleRequester)

	userID, role, ok := hub.Identity(s)
	assert.True(t, ok)
	assert.Equal(t, int32(7), userID)
	assert.Equal(t, domain.RoleRequester, role)
	assert.True(t, hub.Connected(7))

	hub.Publish(realtime.UserChannel(7), realtime.Notify{Kind: realtime.NotifyNewOffer, RequestID: 10})
	assert.Len(t, s.received(), 1)
}

func TestHub_SubscribeRequiresIdentity(t *testing.T) {
	hub := realtime.NewHub()
	s := &fakeSession{id: "s1"}

	err := hub.Subscribe(s, realtime.RequestChannel(10))
	assert.ErrorIs(t, err, realtime.ErrNotAuthenticated)

	hub.Authenticate(s, 7, domain.RoleVolunteer)
	assert.NoError(t, hub.Subscribe(s, realtime.RequestChannel(10)))
}

func TestHub_PublishFanOut(t *testing.T) {
	hub := realtime.NewHub()
	a := &fakeSession{id: "a"}
	b := &fakeSession{id: "b"}
	c := &fakeSession{id: "c"}
	hub.Authenticate(a, 1, domain.RoleRequester)
	hub.Authenticate(b, 2, domain.RoleVolunteer)
	hub.Authenticate(c, 3, domain.RoleVolunteer)
	assert.NoError(t, hub.Subscribe(a, realtime.RequestChannel(10)))
	assert.NoError(t, hub.Subscribe(b, realtime.RequestChannel(10)))

	msg := realtime.NewMessage{Message: domain.ChatMessage{ID: 55, RequestID: 10, SenderID: 1, RecipientID: 2, Body: "hi"}}
	hub.Publish(realtime.RequestChannel(10), msg)

	assert.Equal(t, []realtime.Event{msg}, a.received())
	assert.Equal(t, []realtime.Event{msg}, b.received())
	assert.Empty(t, c.received(), "non-member must not see the event")
}

func TestHub_PublishToEmptyChannelIsDropped(t *testing.T) {
	hub := realtime.NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(realtime.RequestChannel(10), realtime.Reminder{RequestID: 10, InMs: 3600000})
	})
}

func TestHub_DisconnectStopsDelivery(t *testing.T) {
	hub := realtime.NewHub()
	s := &fakeSession{id: "s1"}
	hub.Authenticate(s, 7, domain.RoleRequester)
	assert.NoError(t, hub.Subscribe(s, realtime.RequestChannel(10)))

	hub.Disconnect(s)

	hub.Publish(realtime.UserChannel(7), realtime.Notify{Kind: realtime.NotifyMessage, RequestID: 10})
	hub.Publish(realtime.RequestChannel(10), realtime.Read{MessageID: 1, RequestID: 10, ByUserID: 2})
	assert.Empty(t, s.received())
	assert.False(t, hub.Connected(7))

	_, _, ok := hub.Identity(s)
	assert.False(t, ok)
}

func TestHub_ConnectedPerUser(t *testing.T) {
	hub := realtime.NewHub()
	s1 := &fakeSession{id: "s1"}
	s2 := &fakeSession{id: "s2"}
	hub.Authenticate(s1, 7, domain.RoleRequester)
	hub.Authenticate(s2, 7, domain.RoleRequester)

	hub.Disconnect(s1)
	assert.True(t, hub.Connected(7), "second session keeps the user connected")
	hub.Disconnect(s2)
	assert.False(t, hub.Connected(7))
}

func TestHub_FullSessionDoesNotBlockOthers(t *testing.T) {
	hub := realtime.NewHub()
	stuck := &fakeSession{id: "stuck", full: true}
	live := &fakeSession{id: "live"}
	hub.Authenticate(stuck, 1, domain.RoleRequester)
	hub.Authenticate(live, 2, domain.RoleVolunteer)
	assert.NoError(t, hub.Subscribe(stuck, realtime.RequestChannel(10)))
	assert.NoError(t, hub.Subscribe(live, realtime.RequestChannel(10)))

	hub.Publish(realtime.RequestChannel(10), realtime.Delivered{MessageID: 1, RequestID: 10})
	assert.Len(t, live.received(), 1)
}

func TestHub_OrderingPerChannel(t *testing.T) {
	hub := realtime.NewHub()
	s := &fakeSession{id: "s1"}
	hub.Authenticate(s, 7, domain.RoleRequester)

	for i := int32(1); i <= 5; i++ {
		hub.Publish(realtime.UserChannel(7), realtime.Notify{Kind: realtime.NotifyMessage, RequestID: i})
	}
	got := s.received()
	assert.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, int32(i+1), ev.(realtime.Notify).RequestID)
	}
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "user:7", realtime.UserChannel(7).String())
	assert.Equal(t, "request:10", realtime.RequestChannel(10).String())
}
