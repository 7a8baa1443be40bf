package ws

import (
	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"

	"github.com/gorilla/websocket"
)

type Client struct {
	UserID string
	Role   models.UserRole
	Conn   *websocket.Conn
	Send   chan *models.ChatMessage

	manager *Manager
}

// readPump держит соединение живым и снимает клиента с учета при
// разрыве. Входящие фреймы игнорируются: отправка сообщений идет
// через HTTP API, сокет используется только для доставки.
func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("ws read error", "user_id", c.UserID)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.WithError(err).Warn("ws write error", "user_id", c.UserID)
			return
		}
	}
	// Send закрыт менеджером
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
