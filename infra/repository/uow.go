package repository

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/gobanking/bankingapp/pkg/repository"
	"gorm.io/gorm"
)

type repoKey struct {
	entity reflect.Type
	write  bool
}

type constructors struct {
	read  func(*UnitOfWork) any
	write func(*UnitOfWork) any
}

func registerEntity[T any](registry map[reflect.Type]constructors) {
	registry[reflect.TypeFor[T]()] = constructors{
		read:  func(u *UnitOfWork) any { return newReadRepository[T](u) },
		write: func(u *UnitOfWork) any { return newWriteRepository[T](u) },
	}
}

// UnitOfWork implements repository.UnitOfWork on top of one GORM transaction.
// The transaction begins at construction; every repository handed out operates
// on it, so all staged changes land atomically at Commit or are rolled back at
// Dispose. Repositories are cached per (entity type, read/write) pair through
// a reflect.Type-keyed registry of typed constructors.
//
// One UnitOfWork owns one database session exclusively. It is not safe for
// concurrent use from multiple goroutines.
type UnitOfWork struct {
	tx        *gorm.DB
	logger    *slog.Logger
	registry  map[reflect.Type]constructors
	repos     map[repoKey]any
	affected  int64
	committed bool
	disposed  bool
}

// New begins a transaction on db and returns the UnitOfWork bound to it.
func New(db *gorm.DB, logger *slog.Logger) (*UnitOfWork, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}

	registry := make(map[reflect.Type]constructors, 3)
	registerEntity[domain.Account](registry)
	registerEntity[domain.AccountHolder](registry)
	registerEntity[domain.Transaction](registry)

	return &UnitOfWork{
		tx:       tx,
		logger:   logger,
		registry: registry,
		repos:    make(map[repoKey]any),
	}, nil
}

// ReadRepository implements repository.UnitOfWork.
func (u *UnitOfWork) ReadRepository(entityType reflect.Type) (any, error) {
	return u.repository(entityType, false)
}

// WriteRepository implements repository.UnitOfWork.
func (u *UnitOfWork) WriteRepository(entityType reflect.Type) (any, error) {
	return u.repository(entityType, true)
}

func (u *UnitOfWork) repository(entityType reflect.Type, write bool) (any, error) {
	if u.disposed {
		return nil, gorm.ErrInvalidTransaction
	}
	key := repoKey{entity: entityType, write: write}
	if repo, ok := u.repos[key]; ok {
		return repo, nil
	}
	ctors, ok := u.registry[entityType]
	if !ok {
		return nil, fmt.Errorf("no repository registered for entity type %s", entityType)
	}
	var repo any
	if write {
		repo = ctors.write(u)
	} else {
		repo = ctors.read(u)
	}
	u.repos[key] = repo
	return repo, nil
}

// Commit makes all staged changes durable and returns the number of affected
// rows. A commit failure leaves nothing applied; the transaction is gone
// either way, so the unit of work is unusable afterwards.
func (u *UnitOfWork) Commit(ctx context.Context) (int64, error) {
	if u.disposed {
		return 0, gorm.ErrInvalidTransaction
	}
	u.logger.Debug("committing unit of work")
	if err := u.tx.WithContext(ctx).Commit().Error; err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	u.committed = true
	u.logger.Debug("commit completed", "affected", u.affected)
	return u.affected, nil
}

// Dispose releases the underlying session, rolling back anything not
// committed. Idempotent: later calls are no-ops.
func (u *UnitOfWork) Dispose() error {
	if u.disposed {
		return nil
	}
	u.disposed = true
	if u.committed {
		return nil
	}
	if err := u.tx.Rollback().Error; err != nil {
		u.logger.Warn("rollback failed", "error", err)
		return err
	}
	return nil
}

// Factory returns a constructor for per-request units of work over db, the
// shape the web layer and services consume.
func Factory(db *gorm.DB, logger *slog.Logger) func() (repository.UnitOfWork, error) {
	return func() (repository.UnitOfWork, error) {
		return New(db, logger)
	}
}
