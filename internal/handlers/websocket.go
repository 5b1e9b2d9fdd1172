package handlers

import (
	"strconv"

	"paylink/internal/logger"
	"paylink/internal/services/notification"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketHandler upgrades notification push connections and keeps the
// registry in sync with connection lifecycle.
type WebSocketHandler struct {
	registry *notification.Registry
}

func NewWebSocketHandler(registry *notification.Registry) *WebSocketHandler {
	return &WebSocketHandler{registry: registry}
}

// Upgrade gates the HTTP->WS upgrade. The token is accepted as a query
// parameter because browsers cannot set headers on websocket dials.
func (h *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return utils.BadRequest(c, "Invalid user id")
	}

	token := c.Query("token")
	claims, err := utils.ParseToken(token)
	if err != nil || claims.UserID != uint(userID) {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	c.Locals("ws_user_id", uint(userID))
	return c.Next()
}

// Serve registers the connection and blocks reading until the client
// goes away. Inbound messages are drained and discarded; the socket is
// push only.
func (h *WebSocketHandler) Serve(conn *websocket.Conn) {
	userID, ok := conn.Locals("ws_user_id").(uint)
	if !ok {
		conn.Close()
		return
	}

	h.registry.Register(userID, conn)
	defer func() {
		h.registry.Unregister(userID, conn)
		conn.Close()
	}()

	logger.Debugf("websocket connected for user %d", userID)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
