// Package repository defines the persistence contracts: generic read/write
// repositories over one entity type and the UnitOfWork transaction boundary.
// Implementations live in infra/repository; business code depends only on
// these interfaces.
package repository

import "context"

// ReadRepository exposes read access for one entity type T.
type ReadRepository[T any] interface {
	// GetByID returns the matching entity, or (nil, nil) on a miss. A miss is
	// not an error; callers branch on the nil entity.
	GetByID(ctx context.Context, id uint) (*T, error)

	// GetAll returns every entity of type T in storage-defined order.
	GetAll(ctx context.Context) ([]*T, error)

	// FindBy returns all entities matching the query predicate,
	// e.g. FindBy(ctx, "account_id = ?", id).
	FindBy(ctx context.Context, query any, args ...any) ([]*T, error)

	// FindOneBy returns the first entity matching the query predicate, or
	// (nil, nil) when nothing matches.
	FindOneBy(ctx context.Context, query any, args ...any) (*T, error)
}

// WriteRepository stages mutations for one entity type T. Nothing a
// WriteRepository does is durable until the owning UnitOfWork commits.
type WriteRepository[T any] interface {
	// Add stages an insert. The entity's identifier is assigned during Add so
	// callers can reference it before commit.
	Add(ctx context.Context, entity *T) error

	// Update stages a field-level overwrite of the stored row matching the
	// entity's identifier. For entities implementing domain.Versioned the
	// write is compare-and-swap and a version mismatch returns
	// domain.ErrStaleEntity; for all others an update matching no row is a
	// silent no-op.
	Update(ctx context.Context, entity *T) error

	// Delete stages a removal.
	Delete(ctx context.Context, entity *T) error
}
