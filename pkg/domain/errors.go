package domain

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountHolderNotFound is returned when an account holder cannot be found.
	ErrAccountHolderNotFound = errors.New("account holder not found")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnsupportedTransactionType is returned when a transaction type outside
	// the Deposit/Withdrawal set is posted.
	ErrUnsupportedTransactionType = errors.New("unsupported transaction type")

	// ErrStaleEntity is returned when a versioned update matched no row, meaning
	// the entity was modified concurrently (or no longer exists).
	ErrStaleEntity = errors.New("stale entity version")
)
