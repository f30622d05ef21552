package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of balance-affecting operations.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

// Valid reports whether t is a member of the closed transaction-type set.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Transaction is an append-only record of a deposit or withdrawal against an
// account. Transactions are immutable once created; they are never updated or
// deleted.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AccountID uint            `gorm:"index" json:"account_id"`
	Type      TransactionType `gorm:"size:16" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Date      time.Time       `json:"date"`

	Account *Account `gorm:"foreignKey:AccountID" json:"-"`
}
