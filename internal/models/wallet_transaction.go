package models

// WalletTransaction - append-only журнал движений по кошельку.
// Строки не обновляются и не удаляются; коррекции оформляются
// встречными записями (refund).
//
// Уникальный индекс по application_id и есть гарантия exactly-once
// расчета: повторный settle того же отклика упирается в индекс и
// не кредитует баланс второй раз.
type WalletTransaction struct {
	BaseModel
	UserID string  `gorm:"not null;index" json:"userId"`
	Amount float64 `gorm:"not null" json:"amount"` // со знаком: кредит > 0, дебет < 0

	Type TransactionType `gorm:"type:varchar(20);not null" json:"type"`

	ApplicationID *string `gorm:"uniqueIndex" json:"applicationId,omitempty"`
	WithdrawalID  *string `gorm:"index" json:"withdrawalId,omitempty"`
}
