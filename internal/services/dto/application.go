package dto

import "microjob_backend/internal/models"

// SubmitApplicationRequest - анкета отклика. Поля анкеты непрозрачны
// для ядра, проверяется только присутствие обязательных.
type SubmitApplicationRequest struct {
	FullName    string `json:"fullName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=30"`
	TelegramID  string `json:"telegramId" validate:"omitempty,max=100"`
	CoverLetter string `json:"coverLetter" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required"`
}

type ApplicationListResponse struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
}
