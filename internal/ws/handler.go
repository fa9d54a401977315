package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/security"
	"helpmatch-backend/internal/service"
)

// Handler upgrades HTTP connections to websocket sessions and wires them
// into the hub. Authentication happens inside the socket via the
// authenticate action, not at upgrade time.
type Handler struct {
	hub      *realtime.Hub
	tokens   security.TokenManager
	chat     service.ChatService
	upgrader websocket.Upgrader
}

func NewHandler(hub *realtime.Hub, tokens security.TokenManager, chat service.ChatService) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		chat:   chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the app origin; the token
			// inside the socket is the actual credential.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles websocket upgrade requests at GET /ws.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("Websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		handler: h,
		conn:    conn,
		send:    make(chan realtime.Event, sendBufferSize),
		quit:    make(chan struct{}),
	}

	go client.writePump()
	go client.readPump()
}
