package dto

import "microjob_backend/internal/models"

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`

	// ThreadID заполняется только админом (отвечает в чужой тред);
	// для пользователя тред всегда его собственный uid
	ThreadID string `json:"threadId" validate:"omitempty,uuid"`
}

type MessageListResponse struct {
	Messages []models.ChatMessage `json:"messages"`
	Total    int                  `json:"total"`
}

type ThreadListResponse struct {
	Threads []models.ChatThread `json:"threads"`
	Total   int                 `json:"total"`
}
