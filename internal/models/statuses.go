package models

type UserStatus string
type UserRole string
type ApplicationStatus string
type WithdrawalStatus string
type TransactionType string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusBanned   UserStatus = "banned"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusCompleted ApplicationStatus = "completed"
	ApplicationStatusRejected  ApplicationStatus = "rejected"

	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"

	TransactionTypeSettlement TransactionType = "settlement"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeRefund     TransactionType = "refund"
)

// applicationTransitions - машина состояний отклика.
// completed и rejected терминальны, кроме явных обратных переводов
// (completed→accepted "uncomplete", rejected→pending "undo rejection").
// Переходы в тот же статус запрещены.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:   {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted:  {ApplicationStatusCompleted, ApplicationStatusRejected, ApplicationStatusPending},
	ApplicationStatusCompleted: {ApplicationStatusAccepted},
	ApplicationStatusRejected:  {ApplicationStatusPending},
}

// CanTransition проверяет допустимость перевода статуса отклика
func CanTransition(from, to ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted,
		ApplicationStatusCompleted, ApplicationStatusRejected:
		return true
	}
	return false
}

func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusCompleted, WithdrawalStatusRejected:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusApproved, UserStatusBanned:
		return true
	}
	return false
}
