package repository

import (
	"context"
	"fmt"
	"reflect"
)

// UnitOfWork aggregates the repositories of one logical operation behind a
// single transaction boundary. One instance corresponds to one request; it
// owns one storage session exclusively and must not be shared across
// concurrent operations.
//
// Repositories are cached per (entity type, read/write) pair, so repeated
// requests for the same repository observe the same staged-change context.
// Repository access is type-safe through ReadRepositoryFor / WriteRepositoryFor;
// the reflect.Type-keyed methods exist so implementations can keep a typed
// registry instead of name-string lookup.
type UnitOfWork interface {
	// ReadRepository returns the cached read repository for the entity type,
	// as a ReadRepository[T] behind any.
	ReadRepository(entityType reflect.Type) (any, error)

	// WriteRepository returns the cached write repository for the entity type,
	// as a WriteRepository[T] behind any.
	WriteRepository(entityType reflect.Type) (any, error)

	// Commit makes every staged change across all repositories obtained from
	// this unit of work durable as one atomic operation, returning the number
	// of affected rows. On failure nothing staged is observable afterwards.
	Commit(ctx context.Context) (int64, error)

	// Dispose releases the underlying storage session, rolling back anything
	// not committed. Safe to call more than once.
	Dispose() error
}

// ReadRepositoryFor returns the unit of work's read repository for T.
func ReadRepositoryFor[T any](uow UnitOfWork) (ReadRepository[T], error) {
	repoAny, err := uow.ReadRepository(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(ReadRepository[T])
	if !ok {
		return nil, fmt.Errorf("unit of work returned %T, not a ReadRepository[%s]", repoAny, reflect.TypeFor[T]())
	}
	return repo, nil
}

// WriteRepositoryFor returns the unit of work's write repository for T.
func WriteRepositoryFor[T any](uow UnitOfWork) (WriteRepository[T], error) {
	repoAny, err := uow.WriteRepository(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(WriteRepository[T])
	if !ok {
		return nil, fmt.Errorf("unit of work returned %T, not a WriteRepository[%s]", repoAny, reflect.TypeFor[T]())
	}
	return repo, nil
}
