// Package account implements the account commands and queries, including the
// transaction-posting core: account lookup, balance-sufficiency check,
// transaction record creation and balance update, committed as one unit of
// work.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobanking/bankingapp/pkg/common"
	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/gobanking/bankingapp/pkg/dto"
	"github.com/gobanking/bankingapp/pkg/repository"
	"github.com/shopspring/decimal"
)

// maxPostAttempts bounds the optimistic-concurrency retry loop of Transact.
const maxPostAttempts = 3

// Service provides account business operations.
type Service struct {
	uowFactory func() (repository.UnitOfWork, error)
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a Service. uowFactory must yield a fresh unit of work per call.
func New(uowFactory func() (repository.UnitOfWork, error), logger *slog.Logger) *Service {
	return &Service{uowFactory: uowFactory, logger: logger, now: time.Now}
}

// Create opens a new account for an account holder. The account number is
// derived from the creation instant and the account is activated immediately.
func (s *Service) Create(ctx context.Context, req dto.CreateAccountRequest) (common.Response[uint], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[uint]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	writeRepo, err := repository.WriteRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}

	a := &domain.Account{
		AccountNumber:   domain.NewAccountNumber(s.now()),
		AccountHolderID: req.AccountHolderID,
		Balance:         decimal.NewFromFloat(req.Balance),
		IsActive:        true,
		Type:            req.Type,
	}
	if err = writeRepo.Add(ctx, a); err != nil {
		return common.Response[uint]{}, err
	}
	if _, err = uow.Commit(ctx); err != nil {
		return common.Response[uint]{}, err
	}

	s.logger.Info("account created", "accountID", a.ID, "accountNumber", a.AccountNumber)
	return common.Ok(a.ID, "Account created successfully"), nil
}

// Transact posts a deposit or withdrawal against an account. The whole
// read-modify-write is retried when a concurrent posting wins the optimistic
// version check, so no committed balance change is ever overwritten.
func (s *Service) Transact(ctx context.Context, req dto.TransactionRequest) (common.Response[uint], error) {
	amount := decimal.NewFromFloat(req.Amount)
	logger := s.logger.With("accountID", req.AccountID, "type", req.Type, "amount", amount)

	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		resp, err := s.transactOnce(ctx, req.AccountID, req.Type, amount)
		if errors.Is(err, domain.ErrStaleEntity) {
			logger.Warn("concurrent balance update detected, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return common.Response[uint]{}, err
		}
		return resp, nil
	}
	logger.Error("transaction posting exhausted retries")
	return common.Response[uint]{}, domain.ErrStaleEntity
}

func (s *Service) transactOnce(
	ctx context.Context,
	accountID uint,
	txType domain.TransactionType,
	amount decimal.Decimal,
) (common.Response[uint], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[uint]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	accounts, err := repository.ReadRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	a, err := accounts.GetByID(ctx, accountID)
	if err != nil {
		return common.Response[uint]{}, err
	}
	if a == nil {
		s.logger.Warn("account does not exist", "accountID", accountID, "error", domain.ErrAccountNotFound)
		return common.Failed[uint]("Account does not exist"), nil
	}

	var successMessage string
	switch txType {
	case domain.TransactionTypeWithdrawal:
		if err = a.Withdraw(amount); err != nil {
			s.logger.Warn("insufficient balance for withdrawal", "accountID", accountID)
			return common.Failed[uint]("Withdrawal amount is higher than account balance"), nil
		}
		successMessage = "Withdrawal was successful"
	case domain.TransactionTypeDeposit:
		a.Deposit(amount)
		successMessage = "Deposit was successful"
	default:
		s.logger.Warn("unsupported transaction type",
			"accountID", accountID, "type", txType, "error", domain.ErrUnsupportedTransactionType)
		return common.Failed[uint](
			fmt.Sprintf("Unsupported transaction type: %s", txType)), nil
	}

	transaction := &domain.Transaction{
		AccountID: a.ID,
		Type:      txType,
		Amount:    amount,
		Date:      s.now(),
	}

	transactionWrite, err := repository.WriteRepositoryFor[domain.Transaction](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	accountWrite, err := repository.WriteRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}

	if err = transactionWrite.Add(ctx, transaction); err != nil {
		return common.Response[uint]{}, err
	}
	if err = accountWrite.Update(ctx, a); err != nil {
		return common.Response[uint]{}, err
	}
	if _, err = uow.Commit(ctx); err != nil {
		return common.Response[uint]{}, err
	}

	s.logger.Info("transaction posted",
		"transactionID", transaction.ID, "accountID", a.ID, "type", txType, "balance", a.Balance)
	return common.Ok(transaction.ID, successMessage), nil
}

// GetByID returns the account projection for id.
func (s *Service) GetByID(ctx context.Context, id uint) (common.Response[dto.AccountResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	accounts, err := repository.ReadRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	a, err := accounts.GetByID(ctx, id)
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	if a == nil {
		s.logger.Warn("account does not exist", "accountID", id)
		return common.Failed[dto.AccountResponse]("Account does not exist"), nil
	}
	return common.Ok(dto.NewAccountResponse(a)), nil
}

// GetByNumber returns the account projection matching an account number.
func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (common.Response[dto.AccountResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	accounts, err := repository.ReadRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	a, err := accounts.FindOneBy(ctx, "account_number = ?", accountNumber)
	if err != nil {
		return common.Response[dto.AccountResponse]{}, err
	}
	if a == nil {
		s.logger.Warn("account does not exist", "accountNumber", accountNumber)
		return common.Failed[dto.AccountResponse]("Account does not exist"), nil
	}
	return common.Ok(dto.NewAccountResponse(a)), nil
}

// GetAll returns all account projections. An empty result is reported as a
// failure, preserving the historical list-query contract.
func (s *Service) GetAll(ctx context.Context) (common.Response[[]dto.AccountResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[[]dto.AccountResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	accounts, err := repository.ReadRepositoryFor[domain.Account](uow)
	if err != nil {
		return common.Response[[]dto.AccountResponse]{}, err
	}
	all, err := accounts.GetAll(ctx)
	if err != nil {
		return common.Response[[]dto.AccountResponse]{}, err
	}
	if len(all) == 0 {
		s.logger.Warn("no accounts found")
		return common.Failed[[]dto.AccountResponse]("No accounts found"), nil
	}

	responses := make([]dto.AccountResponse, 0, len(all))
	for _, a := range all {
		responses = append(responses, dto.NewAccountResponse(a))
	}
	return common.Ok(responses), nil
}

// GetTransactions returns the transaction projections of one account. An
// empty result is reported as a failure, preserving the historical list-query
// contract.
func (s *Service) GetTransactions(ctx context.Context, accountID uint) (common.Response[[]dto.TransactionResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[[]dto.TransactionResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	transactions, err := repository.ReadRepositoryFor[domain.Transaction](uow)
	if err != nil {
		return common.Response[[]dto.TransactionResponse]{}, err
	}
	list, err := transactions.FindBy(ctx, "account_id = ?", accountID)
	if err != nil {
		return common.Response[[]dto.TransactionResponse]{}, err
	}
	if len(list) == 0 {
		s.logger.Warn("no transactions found", "accountID", accountID)
		return common.Failed[[]dto.TransactionResponse]("No transactions found for the specified account."), nil
	}

	responses := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		responses = append(responses, dto.NewTransactionResponse(t))
	}
	return common.Ok(responses), nil
}
