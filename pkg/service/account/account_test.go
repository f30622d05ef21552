package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/gobanking/bankingapp/pkg/dto"
	"github.com/gobanking/bankingapp/pkg/testutils"
)

var testInstant = time.Date(2024, 7, 9, 14, 5, 33, 0, time.UTC)

func newTestService(store *testutils.Store) *Service {
	svc := New(testutils.Factory(store), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return testInstant }
	return svc
}

func seedAccount(store *testutils.Store, balance int64) domain.Account {
	return store.SeedAccount(domain.Account{
		AccountNumber:   "240709140533",
		AccountHolderID: 1,
		Balance:         decimal.NewFromInt(balance),
		IsActive:        true,
		Type:            domain.AccountTypeChecking,
	})
}

func TestCreate(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)

	resp, err := svc.Create(context.Background(), dto.CreateAccountRequest{
		AccountHolderID: 7,
		Balance:         250.50,
		Type:            domain.AccountTypeSavings,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Account created successfully"}, resp.Messages)

	saved, ok := store.Accounts[resp.Data]
	require.True(t, ok)
	assert.Equal(t, "240709140533", saved.AccountNumber)
	assert.Equal(t, uint(7), saved.AccountHolderID)
	assert.True(t, saved.Balance.Equal(decimal.NewFromFloat(250.50)))
	assert.True(t, saved.IsActive)
	assert.Equal(t, domain.AccountTypeSavings, saved.Type)
}

func TestCreateThenGetByID(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), dto.CreateAccountRequest{
		AccountHolderID: 1,
		Balance:         100,
		Type:            domain.AccountTypeChecking,
	})
	require.NoError(t, err)
	require.True(t, created.Success)

	fetched, err := svc.GetByID(context.Background(), created.Data)
	require.NoError(t, err)
	require.True(t, fetched.Success)
	assert.Equal(t, created.Data, fetched.Data.ID)
	assert.Equal(t, "240709140533", fetched.Data.AccountNumber)
	assert.True(t, fetched.Data.Balance.Equal(decimal.NewFromInt(100)))
}

func TestTransactDeposit(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    50,
		Type:      domain.TransactionTypeDeposit,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Deposit was successful"}, resp.Messages)

	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(150)))

	require.Len(t, store.Transactions, 1)
	posted := store.Transactions[resp.Data]
	assert.Equal(t, a.ID, posted.AccountID)
	assert.Equal(t, domain.TransactionTypeDeposit, posted.Type)
	assert.True(t, posted.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, testInstant, posted.Date)
}

func TestTransactWithdrawal(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    40,
		Type:      domain.TransactionTypeWithdrawal,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Withdrawal was successful"}, resp.Messages)
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(60)))
	require.Len(t, store.Transactions, 1)
	assert.Equal(t, domain.TransactionTypeWithdrawal, store.Transactions[resp.Data].Type)
}

func TestTransactWithdrawalDrainsExactBalance(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    100,
		Type:      domain.TransactionTypeWithdrawal,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, store.Accounts[a.ID].Balance.IsZero())
}

func TestTransactWithdrawalInsufficientFunds(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    150,
		Type:      domain.TransactionTypeWithdrawal,
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"Withdrawal amount is higher than account balance"}, resp.Messages)

	// Nothing may change: balance intact, no transaction row.
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, store.Transactions)
}

func TestTransactUnknownAccount(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: 999,
		Amount:    10,
		Type:      domain.TransactionTypeDeposit,
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"Account does not exist"}, resp.Messages)
}

func TestTransactUnsupportedType(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    10,
		Type:      domain.TransactionType("Transfer"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"Unsupported transaction type: Transfer"}, resp.Messages)
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, store.Transactions)
}

func TestTransactRetriesOnStaleUpdate(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)
	store.StaleUpdates = 1

	resp, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    50,
		Type:      domain.TransactionTypeDeposit,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(150)))
	assert.Len(t, store.Transactions, 1)
}

func TestTransactExhaustedRetriesSurfaceStaleEntity(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)
	store.StaleUpdates = maxPostAttempts

	_, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    50,
		Type:      domain.TransactionTypeDeposit,
	})

	require.ErrorIs(t, err, domain.ErrStaleEntity)
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, store.Transactions)
}

func TestTransactCommitFailureIsAtomic(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)
	store.CommitErr = errors.New("connection reset")

	_, err := svc.Transact(context.Background(), dto.TransactionRequest{
		AccountID: a.ID,
		Amount:    50,
		Type:      domain.TransactionTypeDeposit,
	})

	require.Error(t, err)
	assert.True(t, store.Accounts[a.ID].Balance.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, store.Transactions)
}

func TestGetByNumber(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)

	resp, err := svc.GetByNumber(context.Background(), a.AccountNumber)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, a.ID, resp.Data.ID)

	missing, err := svc.GetByNumber(context.Background(), "000000000000")
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, []string{"Account does not exist"}, missing.Messages)
}

func TestGetAll(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)

	empty, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.False(t, empty.Success)
	assert.Equal(t, []string{"No accounts found"}, empty.Messages)

	seedAccount(store, 100)
	store.SeedAccount(domain.Account{
		AccountNumber: "240709140534",
		Balance:       decimal.NewFromInt(20),
		Type:          domain.AccountTypeSavings,
	})

	resp, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
}

func TestGetTransactions(t *testing.T) {
	store := testutils.NewStore()
	svc := newTestService(store)
	a := seedAccount(store, 100)
	other := seedAccount(store, 50)

	store.SeedTransaction(domain.Transaction{
		AccountID: a.ID, Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(10), Date: testInstant,
	})
	store.SeedTransaction(domain.Transaction{
		AccountID: a.ID, Type: domain.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(5), Date: testInstant,
	})
	store.SeedTransaction(domain.Transaction{
		AccountID: other.ID, Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(99), Date: testInstant,
	})

	resp, err := svc.GetTransactions(context.Background(), a.ID)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	for _, tx := range resp.Data {
		assert.Equal(t, a.ID, tx.AccountID)
	}

	none, err := svc.GetTransactions(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, none.Success)
	assert.Equal(t, []string{"No transactions found for the specified account."}, none.Messages)
}
