package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of supported account types.
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
)

// Valid reports whether t is a member of the closed account-type set.
func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account is a bank account owned by an AccountHolder.
//
// The Balance column is the exclusive source of truth for the account balance;
// Transaction rows are an append-only record of balance-affecting events and
// are never summed to derive it. Balance must never go negative through a
// committed withdrawal.
type Account struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AccountNumber   string          `gorm:"uniqueIndex;size:12" json:"account_number"`
	AccountHolderID uint            `gorm:"index" json:"account_holder_id"`
	Balance         decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	IsActive        bool            `json:"is_active"`
	Type            AccountType     `gorm:"size:16" json:"type"`

	// Version is the optimistic concurrency token; every committed update
	// increments it, and a mismatch at write time surfaces as ErrStaleEntity.
	Version uint `json:"-"`

	AccountHolder *AccountHolder `gorm:"foreignKey:AccountHolderID" json:"-"`
	Transactions  []Transaction  `gorm:"foreignKey:AccountID" json:"-"`
}

// EntityVersion implements Versioned.
func (a *Account) EntityVersion() uint { return a.Version }

// BumpVersion implements Versioned.
func (a *Account) BumpVersion() { a.Version++ }

// Deposit increments the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Withdraw decrements the balance by amount. Withdrawing the exact balance is
// permitted; anything above it fails with ErrInsufficientFunds and leaves the
// balance untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// NewAccountNumber derives an account number from the creation instant using
// the historical yyMMddHHmmss format. Collision-prone within one second under
// concurrent creation; the unique index on accounts.account_number turns a
// collision into a storage error rather than a silent duplicate.
func NewAccountNumber(now time.Time) string {
	return now.Format("060102150405")
}
