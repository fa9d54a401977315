package realtime

import (
	"errors"
	"sync"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/logger"
)

var ErrNotAuthenticated = errors.New("session is not authenticated")

// Session is one real-time connection. Deliver must not block: transports
// back it with a buffered queue and report false when the queue is full or
// the connection is gone.
type Session interface {
	ID() string
	Deliver(Event) bool
}

// Publisher is the fan-out surface the lifecycle and chat services depend
// on. Publish is fire-and-forget; it never fails the caller.
type Publisher interface {
	Publish(ch Channel, ev Event)
	Connected(userID int32) bool
}

type identity struct {
	userID int32
	role   domain.Role
}

// Hub is the session registry and fan-out engine: a routing table from
// channels to live sessions. It performs no request-level authorization;
// events only reach a request channel through the lifecycle service, which
// authorizes before publishing.
type Hub struct {
	mu         sync.RWMutex
	identities map[string]identity            // session id -> authenticated user
	members    map[Channel]map[string]Session // channel -> subscribed sessions
	subscribed map[string]map[Channel]bool    // session id -> its channels
}

func NewHub() *Hub {
	return &Hub{
		identities: make(map[string]identity),
		members:    make(map[Channel]map[string]Session),
		subscribed: make(map[string]map[Channel]bool),
	}
}

// Authenticate binds a session to a user identity and subscribes it to the
// user's direct channel.
func (h *Hub) Authenticate(s Session, userID int32, role domain.Role) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identities[s.ID()] = identity{userID: userID, role: role}
	h.subscribeLocked(s, UserChannel(userID))
}

// Identity returns the user bound to the session, if any.
func (h *Hub) Identity(s Session) (int32, domain.Role, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.identities[s.ID()]
	return id.userID, id.role, ok
}

// Subscribe adds an authenticated session to a channel.
func (h *Hub) Subscribe(s Session, ch Channel) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.identities[s.ID()]; !ok {
		return ErrNotAuthenticated
	}
	h.subscribeLocked(s, ch)
	return nil
}

func (h *Hub) subscribeLocked(s Session, ch Channel) {
	if h.members[ch] == nil {
		h.members[ch] = make(map[string]Session)
	}
	h.members[ch][s.ID()] = s
	if h.subscribed[s.ID()] == nil {
		h.subscribed[s.ID()] = make(map[Channel]bool)
	}
	h.subscribed[s.ID()][ch] = true
}

// Disconnect removes the session from every channel and drops its identity.
func (h *Hub) Disconnect(s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribed[s.ID()] {
		delete(h.members[ch], s.ID())
		if len(h.members[ch]) == 0 {
			delete(h.members, ch)
		}
	}
	delete(h.subscribed, s.ID())
	delete(h.identities, s.ID())
}

// Publish delivers the event to every session subscribed to the channel at
// the moment of the call. No backlog: sessions that subscribe later never
// see it, and with no subscribers the event is dropped.
func (h *Hub) Publish(ch Channel, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.members[ch] {
		if !s.Deliver(ev) {
			logger.PublishDropped(ch.String(), string(ev.Type()), "session", s.ID())
		}
	}
}

// Connected reports whether the user has at least one live session.
func (h *Hub) Connected(userID int32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members[UserChannel(userID)]) > 0
}
