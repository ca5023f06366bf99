package handler

import (
	"net/http"

	"github.com/fxola/trivia-api/internal/websocket"
	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the API is public and CORS-open
	},
}

// WebSocketHandler subscribes clients to question bank events
type WebSocketHandler struct {
	hub *websocket.Hub
	log *zap.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *websocket.Hub, log *zap.Logger) *WebSocketHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebSocketHandler{
		hub: hub,
		log: log,
	}
}

// HandleWebSocket upgrades the request and attaches the connection to the hub
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return nil
	}

	client, ok := h.hub.Attach(conn)
	if !ok {
		h.log.Warn("ws hub stopped, connection refused")
		return nil
	}

	h.log.Info("ws client connected", zap.String("client_id", client.ID), zap.String("remote", c.RealIP()))
	return nil
}
