package ws

import (
	"net/http"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: ограничить origin доменом фронтенда
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type Handler struct {
	Manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{Manager: manager}
}

// ServeWS апгрейдит соединение для клиента, прошедшего AuthMiddleware
func (h *Handler) ServeWS(c *gin.Context) {
	userIDVal, exists := c.Get("userID")
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role := models.UserRoleUser
	if roleVal, ok := c.Get("role"); ok {
		if roleStr, ok := roleVal.(string); ok && roleStr != "" {
			role = models.UserRole(roleStr)
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed", "user_id", userID)
		return
	}

	client := &Client{
		UserID:  userID,
		Role:    role,
		Conn:    conn,
		Send:    make(chan *models.ChatMessage, 256),
		manager: h.Manager,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
