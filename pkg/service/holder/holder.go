// Package holder implements the account-holder commands and queries. Every
// operation runs against its own unit of work and returns the uniform
// response envelope; storage failures propagate as errors for the outer layer
// to translate.
package holder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gobanking/bankingapp/pkg/common"
	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/gobanking/bankingapp/pkg/dto"
	"github.com/gobanking/bankingapp/pkg/repository"
)

// Service provides account-holder business operations.
type Service struct {
	uowFactory func() (repository.UnitOfWork, error)
	logger     *slog.Logger
}

// New creates a Service. uowFactory must yield a fresh unit of work per call.
func New(uowFactory func() (repository.UnitOfWork, error), logger *slog.Logger) *Service {
	return &Service{uowFactory: uowFactory, logger: logger}
}

// Create persists a new account holder and returns its identifier.
func (s *Service) Create(ctx context.Context, req dto.CreateAccountHolderRequest) (common.Response[uint], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[uint]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	writeRepo, err := repository.WriteRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}

	h := &domain.AccountHolder{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
	if err = writeRepo.Add(ctx, h); err != nil {
		return common.Response[uint]{}, err
	}
	if _, err = uow.Commit(ctx); err != nil {
		return common.Response[uint]{}, err
	}

	s.logger.Info("account holder created", "holderID", h.ID)
	return common.Ok(h.ID, "Account holder created successfully."), nil
}

// Update applies a partial update to an existing account holder.
func (s *Service) Update(ctx context.Context, req dto.UpdateAccountHolderRequest) (common.Response[uint], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[uint]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	readRepo, err := repository.ReadRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	h, err := readRepo.GetByID(ctx, req.ID)
	if err != nil {
		return common.Response[uint]{}, err
	}
	if h == nil {
		s.logger.Warn("account holder not found for update", "holderID", req.ID, "error", domain.ErrAccountHolderNotFound)
		return common.Failed[uint]("Account holder not found"), nil
	}

	h.Update(req.FirstName, req.LastName, req.ContactNumber, req.Email)

	writeRepo, err := repository.WriteRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	if err = writeRepo.Update(ctx, h); err != nil {
		return common.Response[uint]{}, err
	}
	if _, err = uow.Commit(ctx); err != nil {
		return common.Response[uint]{}, err
	}

	s.logger.Info("account holder updated", "holderID", h.ID)
	return common.Ok(h.ID, "Account holder updated successfully"), nil
}

// Delete removes an account holder.
func (s *Service) Delete(ctx context.Context, id uint) (common.Response[uint], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[uint]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	readRepo, err := repository.ReadRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	h, err := readRepo.GetByID(ctx, id)
	if err != nil {
		return common.Response[uint]{}, err
	}
	if h == nil {
		s.logger.Warn("account holder not found for delete", "holderID", id)
		return common.Failed[uint]("Account holder not found."), nil
	}

	writeRepo, err := repository.WriteRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[uint]{}, err
	}
	if err = writeRepo.Delete(ctx, h); err != nil {
		return common.Response[uint]{}, err
	}
	if _, err = uow.Commit(ctx); err != nil {
		return common.Response[uint]{}, err
	}

	s.logger.Info("account holder deleted", "holderID", id)
	return common.Ok(h.ID, "Account holder deleted successfully."), nil
}

// GetByID returns the account-holder projection for id.
func (s *Service) GetByID(ctx context.Context, id uint) (common.Response[dto.AccountHolderResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[dto.AccountHolderResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	readRepo, err := repository.ReadRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[dto.AccountHolderResponse]{}, err
	}
	h, err := readRepo.GetByID(ctx, id)
	if err != nil {
		return common.Response[dto.AccountHolderResponse]{}, err
	}
	if h == nil {
		s.logger.Warn("account holder not found", "holderID", id)
		return common.Failed[dto.AccountHolderResponse](
			fmt.Sprintf("No account holder found with the given id: %d", id)), nil
	}
	return common.Ok(dto.NewAccountHolderResponse(h)), nil
}

// GetAll returns all account-holder projections. An empty result is reported
// as a failure, preserving the historical list-query contract.
func (s *Service) GetAll(ctx context.Context) (common.Response[[]dto.AccountHolderResponse], error) {
	uow, err := s.uowFactory()
	if err != nil {
		return common.Response[[]dto.AccountHolderResponse]{}, err
	}
	defer uow.Dispose() //nolint:errcheck

	readRepo, err := repository.ReadRepositoryFor[domain.AccountHolder](uow)
	if err != nil {
		return common.Response[[]dto.AccountHolderResponse]{}, err
	}
	holders, err := readRepo.GetAll(ctx)
	if err != nil {
		return common.Response[[]dto.AccountHolderResponse]{}, err
	}
	if len(holders) == 0 {
		s.logger.Warn("no account holders were found")
		return common.Failed[[]dto.AccountHolderResponse]("No account holders were found"), nil
	}

	responses := make([]dto.AccountHolderResponse, 0, len(holders))
	for _, h := range holders {
		responses = append(responses, dto.NewAccountHolderResponse(h))
	}
	return common.Ok(responses), nil
}
