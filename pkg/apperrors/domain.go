package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики маркетплейса.
*/

// =========================================================================
// Фабричные функции (оборачивают ошибки нижних слоев, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain string) *AppError {
	return Wrap(err, CodeNotFound, domain, "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные переменные
// =========================================================================

// Аутентификация
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already exists", http.StatusConflict)
)

// Сущности
var (
	ErrUserNotFound        = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrJobNotFound         = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)
	ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)
	ErrWithdrawalNotFound  = New(CodeNotFound, "withdrawal", "Withdrawal not found", http.StatusNotFound)
)

// Жизненный цикл отклика и кошелек.
// AlreadyApplied и InsufficientBalance - терминальные для пользователя
// состояния, ретраить их бессмысленно.
var (
	// ErrAlreadyApplied - повторный отклик на ту же вакансию тем же пользователем.
	ErrAlreadyApplied = New(CodeAlreadyApplied, "application", "You have already applied to this job", http.StatusConflict)

	// ErrInvalidTransition - запрошенный перевод статуса нарушает машину состояний.
	// Никогда не приводим к "ближайшему легальному" статусу.
	ErrInvalidTransition = New(CodeInvalidTransition, "application", "Illegal application status transition", http.StatusConflict)

	// ErrInsufficientBalance - запрос на вывод превышает доступный баланс.
	ErrInsufficientBalance = New(CodeInsufficientBalance, "wallet", "Insufficient wallet balance", http.StatusBadRequest)

	// ErrWithdrawalAlreadyResolved - повторное решение по уже решенному выводу
	// с другим исходом. Повтор с тем же исходом обрабатывается как no-op.
	ErrWithdrawalAlreadyResolved = New(CodeAlreadyResolved, "withdrawal", "Withdrawal is already resolved", http.StatusConflict)

	// ErrUserBanned - забаненный пользователь не может откликаться и выводить средства.
	ErrUserBanned = New(CodeUserBanned, "user", "User account is banned", http.StatusForbidden)
)
