package handlers

import (
	"net/http"

	"smarthelmet-backend/internal/websocket"
	"smarthelmet-backend/pkg/jwt"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WebSocketHandler struct {
	hub     *websocket.Hub
	jwtUtil *jwt.JWTUtil
}

func NewWebSocketHandler(hub *websocket.Hub, jwtUtil *jwt.JWTUtil) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		jwtUtil: jwtUtil,
	}
}

// Connect upgrades the request and subscribes the client to per-bike
// rooms. Browsers cannot set headers on WebSocket requests, so the
// token is also accepted as a query parameter. Repeated bikeId
// parameters filter the subscription; none means all bikes.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}

	if _, err := h.jwtUtil.ValidateToken(token); err != nil {
		utils.ErrorMessageResponse(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
		return
	}

	bikeIDs := c.QueryArray("bikeId")

	conn, err := h.hub.GetUpgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "upgrade_failed", err)
		return
	}

	clientID := uuid.New().String()
	if err := h.hub.RegisterClient(clientID, conn, bikeIDs); err != nil {
		conn.Close()
		return
	}
}
