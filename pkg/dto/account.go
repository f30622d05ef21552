package dto

import (
	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for opening an account. Amounts cross
// the boundary as float64 main units and are converted to decimal at the edge.
type CreateAccountRequest struct {
	AccountHolderID uint               `json:"account_holder_id" validate:"required"`
	Balance         float64            `json:"balance" validate:"gte=0"`
	Type            domain.AccountType `json:"type" validate:"required,oneof=Checking Savings"`
}

// AccountResponse is the account projection returned to callers.
type AccountResponse struct {
	ID              uint            `json:"id"`
	AccountNumber   string          `json:"account_number"`
	AccountHolderID uint            `json:"account_holder_id"`
	Balance         decimal.Decimal `json:"balance"`
	IsActive        bool            `json:"is_active"`
	Type            string          `json:"type"`
}

// NewAccountResponse projects an entity into its response shape.
func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		AccountNumber:   a.AccountNumber,
		AccountHolderID: a.AccountHolderID,
		Balance:         a.Balance,
		IsActive:        a.IsActive,
		Type:            string(a.Type),
	}
}
