package handler

import (
	"liveshop-chat-be/internal/pkg/logger"
	"liveshop-chat-be/internal/pkg/serverutils"
	internalWS "liveshop-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatStreamHandler upgrades viewers onto the realtime chat gateway.
type ChatStreamHandler struct {
	gateway *internalWS.Gateway
	logger  logger.ILogger
}

func NewChatStreamHandler(gateway *internalWS.Gateway, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		gateway: gateway,
		logger:  log,
	}
}

// ServeWs authenticates the handshake and hands the connection to the gateway.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query param (browsers cannot set headers on ws dials)
	tokenStr := c.Query("token")

	// Priority 2: Authorization header (tooling/non-browser clients)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return serverutils.NewUnauthorizedError("missing token (query 'token' or header 'Authorization')")
	}

	caller, err := serverutils.ParseCaller(tokenStr)
	if err != nil {
		h.logger.Warn("ChatStreamHandler", "Invalid token in ws handshake", map[string]interface{}{"error": err.Error()})
		return err
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatStreamHandler", "Starting chat session", map[string]interface{}{"user_id": caller.UserId})
			h.gateway.ServeClient(conn, caller)
			h.logger.Info("ChatStreamHandler", "Chat session ended", map[string]interface{}{"user_id": caller.UserId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ChatStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/chat/ws", h.ServeWs)
}
