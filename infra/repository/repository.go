// Package repository provides the GORM-backed implementations of the
// persistence contracts in pkg/repository. All repositories operate on the
// transaction session owned by their UnitOfWork, so every staged change
// becomes durable (or is discarded) together.
package repository

import (
	"context"
	"errors"

	"github.com/gobanking/bankingapp/pkg/domain"
	"gorm.io/gorm"
)

type readRepository[T any] struct {
	uow *UnitOfWork
}

func newReadRepository[T any](uow *UnitOfWork) *readRepository[T] {
	return &readRepository[T]{uow: uow}
}

func (r *readRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.uow.tx.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *readRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.uow.tx.WithContext(ctx).Find(&entities).Error
	return entities, err
}

func (r *readRepository[T]) FindBy(ctx context.Context, query any, args ...any) ([]*T, error) {
	var entities []*T
	err := r.uow.tx.WithContext(ctx).Where(query, args...).Find(&entities).Error
	return entities, err
}

func (r *readRepository[T]) FindOneBy(ctx context.Context, query any, args ...any) (*T, error) {
	var entity T
	err := r.uow.tx.WithContext(ctx).Where(query, args...).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

type writeRepository[T any] struct {
	uow *UnitOfWork
}

func newWriteRepository[T any](uow *UnitOfWork) *writeRepository[T] {
	return &writeRepository[T]{uow: uow}
}

func (r *writeRepository[T]) Add(ctx context.Context, entity *T) error {
	result := r.uow.tx.WithContext(ctx).Create(entity)
	if result.Error != nil {
		return result.Error
	}
	r.uow.affected += result.RowsAffected
	return nil
}

// Update overwrites the stored row matching the entity's primary key. Entities
// implementing domain.Versioned get a compare-and-swap write: the UPDATE is
// guarded by the version the entity was loaded with, and zero matched rows
// surfaces as domain.ErrStaleEntity. Non-versioned entities keep the
// historical behavior where a missing row is a silent no-op; an UPDATE is
// issued with no create fallback, so a row deleted concurrently stays deleted.
func (r *writeRepository[T]) Update(ctx context.Context, entity *T) error {
	if versioned, ok := any(entity).(domain.Versioned); ok {
		loadedVersion := versioned.EntityVersion()
		versioned.BumpVersion()
		result := r.uow.tx.WithContext(ctx).
			Model(entity).
			Where("version = ?", loadedVersion).
			Select("*").
			Updates(entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrStaleEntity
		}
		r.uow.affected += result.RowsAffected
		return nil
	}

	result := r.uow.tx.WithContext(ctx).
		Model(entity).
		Select("*").
		Updates(entity)
	if result.Error != nil {
		return result.Error
	}
	r.uow.affected += result.RowsAffected
	return nil
}

func (r *writeRepository[T]) Delete(ctx context.Context, entity *T) error {
	result := r.uow.tx.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return result.Error
	}
	r.uow.affected += result.RowsAffected
	return nil
}
