package models

import "time"

// ChatThread - тред поддержки, ключуется по uid пользователя.
// Ядро не участвует в семантике доставки, только хранит историю.
type ChatThread struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"` // == UserID
	UserName      string    `json:"userName"`
	LastMessage   string    `json:"lastMessage"`
	LastTimestamp time.Time `json:"lastTimestamp"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type ChatMessage struct {
	BaseModel
	ThreadID   string   `gorm:"not null;index" json:"threadId"`
	SenderID   string   `gorm:"not null" json:"senderId"`
	SenderRole UserRole `gorm:"type:varchar(20);not null" json:"senderRole"`
	Text       string   `gorm:"type:text;not null" json:"text"`
}
