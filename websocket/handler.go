// websocket/handler.go
package websocket

import (
	"time"

	"items-admin-backend/config"
	"items-admin-backend/token"
	"items-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService defines a token validator interface
type AuthService interface {
	VerifyToken(token string) (*token.Payload, error)
}

// WsHandler manages WebSocket requests and connections
type WsHandler struct {
	hub  *Hub
	auth AuthService
}

func NewWsHandler(hub *Hub, auth AuthService) *WsHandler {
	return &WsHandler{
		hub:  hub,
		auth: auth,
	}
}

// HandleWebSocket upgrades an authenticated request and subscribes the
// connection to the batch named in ?batch=.
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Token comes from the HTTPOnly cookie, never the query string
	tokenStr := c.Cookies("access_token")
	if tokenStr == "" {
		config.Logger.Warn("WebSocket connection attempted without access token cookie")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required - no access token cookie found",
		})
	}

	payload, err := h.auth.VerifyToken(tokenStr)
	if err != nil {
		config.Logger.Warn("Invalid access token for WebSocket", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	batchID := c.Query("batch")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "batch parameter is required",
		})
	}
	if _, err := uuid.Parse(batchID); err != nil {
		config.Logger.Warn("Invalid batch ID format",
			zap.String("batchID", batchID),
			zap.String("email", payload.Email),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	config.Logger.Info("WebSocket connection authenticated",
		zap.String("email", payload.Email),
		zap.String("batchID", batchID),
	)

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:      uuid.New(),
			Email:   payload.Email,
			Conn:    conn,
			Hub:     h.hub,
			Send:    make(chan WebSocketMessage, 256),
			Batches: map[string]bool{batchID: true},
		}

		h.hub.Register(client)

		config.Logger.Info("WebSocket client registered",
			zap.String("clientID", client.ID.String()),
			zap.String("batchID", batchID),
		)

		go client.writePump()
		client.readPump()
	})(c)
}

// readPump handles subscription changes sent by the client
func (c *Client) readPump() {
	defer func() {
		config.Logger.Info("WebSocket client disconnecting",
			zap.String("clientID", c.ID.String()),
			zap.String("email", c.Email),
		)
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(64 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg WebSocketMessage
		err := c.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				config.Logger.Warn("WebSocket unexpected close",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
			}
			break
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WebSocketMessage) {
	switch msg.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		if utils.StringToUUIDPtr(msg.BatchID) == nil {
			c.sendError("Invalid batch ID format")
			return
		}
		if msg.Type == MessageTypeSubscribe {
			c.SubscribeToBatch(msg.BatchID)
		} else {
			c.UnsubscribeFromBatch(msg.BatchID)
		}
	default:
		config.Logger.Warn("Unknown WebSocket message type",
			zap.String("type", string(msg.Type)),
			zap.String("clientID", c.ID.String()),
		)
		c.sendError("Unknown message type: " + string(msg.Type))
	}
}

// writePump sends queued messages and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				config.Logger.Debug("WebSocket write error",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				config.Logger.Debug("WebSocket ping error",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
				return
			}
		}
	}
}

func (c *Client) sendError(message string) {
	if err := c.SendMessage(WebSocketMessage{
		Type: MessageTypeError,
		Payload: map[string]interface{}{
			"message": message,
		},
		Timestamp: time.Now(),
	}); err != nil {
		config.Logger.Debug("Dropped WebSocket error message", zap.String("clientID", c.ID.String()))
	}
}

// SendMessage sends a message to this specific client. It fails once the
// hub has dropped the client.
func (c *Client) SendMessage(msg WebSocketMessage) error {
	return c.Hub.deliver(c, msg)
}
