package models

import (
	"time"

	"gorm.io/datatypes"
)

// Withdrawal - запрос на выплату. Средства резервируются (списываются
// с баланса) в момент создания запроса, а не в момент одобрения.
type Withdrawal struct {
	BaseModel
	UserID string  `gorm:"not null;index" json:"userId"`
	Amount float64 `gorm:"not null" json:"amount"`

	// Method + Details - способ выплаты и его реквизиты, непрозрачны для ядра
	Method  string         `gorm:"not null" json:"method"`
	Details datatypes.JSON `gorm:"type:jsonb" json:"details"`

	Status     WithdrawalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ResolvedAt *time.Time       `json:"resolvedAt,omitempty"`
}
