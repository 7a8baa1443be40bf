package services

import (
	"microjob_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	JobService         JobService
	ApplicationService ApplicationService
	WalletService      WalletService
	ChatService        ChatService
	SettingsService    SettingsService
	EmailProvider      email.Provider
}
