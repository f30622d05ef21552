package dto

import (
	"time"

	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the payload for posting a deposit or withdrawal.
type TransactionRequest struct {
	AccountID uint                   `json:"account_id" validate:"required"`
	Amount    float64                `json:"amount" validate:"gt=0"`
	Type      domain.TransactionType `json:"type" validate:"required"`
}

// TransactionResponse is the transaction projection returned to callers.
type TransactionResponse struct {
	ID        uint            `json:"id"`
	AccountID uint            `json:"account_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// NewTransactionResponse projects an entity into its response shape.
func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		AccountID: t.AccountID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Date:      t.Date,
	}
}
