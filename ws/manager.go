package ws

import (
	"sync"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
)

// Manager раздает сообщения чата поддержки онлайн-клиентам.
// Несколько соединений на пользователя допустимы (вкладки).
type Manager struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *models.ChatMessage
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *models.ChatMessage, 64),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("ws client connected", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				close(client.Send)
				delete(m.clients, client)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("ws client disconnected", "user_id", client.UserID, "total", total)

		case msg := <-m.broadcast:
			m.deliver(msg)
		}
	}
}

// BroadcastMessage ставит сообщение в очередь доставки. Неблокирующий:
// при переполнении очереди сообщение теряется для онлайн-доставки, в
// истории треда оно уже сохранено.
func (m *Manager) BroadcastMessage(msg *models.ChatMessage) {
	select {
	case m.broadcast <- msg:
	default:
		logger.Warn("ws broadcast queue full, dropping online delivery",
			"thread_id", msg.ThreadID)
	}
}

// deliver шлет сообщение владельцу треда и всем админам
func (m *Manager) deliver(msg *models.ChatMessage) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients {
		if client.UserID != msg.ThreadID && client.Role != models.UserRoleAdmin {
			continue
		}
		select {
		case client.Send <- msg:
		default:
			// Канал клиента забит, отключаем его
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
