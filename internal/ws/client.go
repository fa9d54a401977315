package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// frame is an inbound client action. A single shape covers all actions; the
// Action field selects which of the remaining fields matter.
type frame struct {
	Action      string `json:"action"`
	Token       string `json:"token,omitempty"`
	RequestID   int32  `json:"request_id,omitempty"`
	RecipientID int32  `json:"recipient_id,omitempty"`
	MessageID   int32  `json:"message_id,omitempty"`
	Body        string `json:"body,omitempty"`
}

// envelope wraps an outbound event with its type discriminator.
type envelope struct {
	Type realtime.EventType `json:"type"`
	Data realtime.Event     `json:"data"`
}

// Client is one websocket connection. It implements realtime.Session: the
// hub hands events to Deliver, which queues them without blocking the
// publisher.
type Client struct {
	id      string
	handler *Handler
	conn    *websocket.Conn
	send    chan realtime.Event
	quit    chan struct{}
}

func (c *Client) ID() string { return c.id }

// Deliver queues an event for the write pump. It never blocks: a full queue
// or a closing connection drops the event, which the hub logs.
func (c *Client) Deliver(ev realtime.Event) bool {
	select {
	case <-c.quit:
		return false
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		c.handler.hub.Disconnect(c)
		close(c.quit)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("Websocket closed unexpectedly", "session", c.id, "error", err)
			}
			return
		}
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			logger.Debug("Malformed websocket frame", "session", c.id, "error", err)
			continue
		}
		c.dispatch(f)
	}
}

func (c *Client) dispatch(f frame) {
	ctx := context.Background()
	h := c.handler

	if f.Action == "authenticate" {
		claims, err := h.tokens.ValidateToken(f.Token)
		if err != nil {
			c.Deliver(realtime.AuthError{Reason: "invalid token"})
			return
		}
		h.hub.Authenticate(c, claims.UserID, claims.Role)
		c.Deliver(realtime.AuthOK{UserID: claims.UserID, Role: claims.Role})
		return
	}

	// Every other action requires a bound identity; frames from
	// unauthenticated sessions are ignored.
	userID, _, ok := h.hub.Identity(c)
	if !ok {
		return
	}

	switch f.Action {
	case "join_request":
		if err := h.hub.Subscribe(c, realtime.RequestChannel(f.RequestID)); err != nil {
			logger.Debug("Subscribe rejected", "session", c.id, "error", err)
		}
	case "send_message":
		msg, err := h.chat.SendMessage(ctx, userID, f.RequestID, f.RecipientID, f.Body)
		if err != nil {
			logger.Debug("Send message failed", "session", c.id, "request_id", f.RequestID, "error", err)
			return
		}
		// Ack to the sender only, carrying the server-assigned id.
		c.Deliver(realtime.Delivered{MessageID: msg.ID, RequestID: msg.RequestID})
	case "mark_read":
		if err := h.chat.MarkRead(ctx, userID, f.MessageID, f.RequestID); err != nil {
			logger.Debug("Mark read failed", "session", c.id, "message_id", f.MessageID, "error", err)
		}
	default:
		logger.Debug("Unknown websocket action", "session", c.id, "action", f.Action)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.quit:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(envelope{Type: ev.Type(), Data: ev}); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
