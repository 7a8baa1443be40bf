package dto

import (
	"encoding/json"

	"microjob_backend/internal/models"
)

// RequestWithdrawalRequest - запрос на вывод средств.
// Details - реквизиты метода выплаты, ядро их не разбирает.
type RequestWithdrawalRequest struct {
	Amount  float64         `json:"amount" validate:"required,gt=0"`
	Method  string          `json:"method" validate:"required,max=50"`
	Details json.RawMessage `json:"details" validate:"omitempty"`
}

type ResolveWithdrawalRequest struct {
	Outcome models.WithdrawalStatus `json:"outcome" validate:"required,oneof=completed rejected"`
}

type WalletResponse struct {
	Balance      float64                    `json:"balance"`
	Transactions []models.WalletTransaction `json:"transactions"`
}

type WithdrawalListResponse struct {
	Withdrawals []models.Withdrawal `json:"withdrawals"`
	Total       int                 `json:"total"`
}
