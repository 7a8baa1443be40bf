package dto

import "microjob_backend/internal/models"

type UpdateProfileRequest struct {
	FullName   *string `json:"fullName,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	TelegramID *string `json:"telegramId,omitempty" validate:"omitempty,max=100"`
	Avatar     *string `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=pending approved banned"`
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}
