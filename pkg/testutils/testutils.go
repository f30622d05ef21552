// Package testutils provides an in-memory repository.UnitOfWork used by
// service and handler tests. Writes are staged per unit of work and only
// applied to the shared Store at Commit, mirroring the durability contract of
// the real implementation.
package testutils

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/gobanking/bankingapp/pkg/domain"
	"github.com/gobanking/bankingapp/pkg/repository"
)

// Store is the in-memory stand-in for the database, shared by every unit of
// work a test creates.
type Store struct {
	mu           sync.Mutex
	Holders      map[uint]domain.AccountHolder
	Accounts     map[uint]domain.Account
	Transactions map[uint]domain.Transaction

	// CommitErr, when set, makes every Commit fail without applying anything.
	CommitErr error

	// StaleUpdates, when positive, makes that many versioned updates fail with
	// domain.ErrStaleEntity before updates succeed again.
	StaleUpdates int

	nextID uint
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Holders:      make(map[uint]domain.AccountHolder),
		Accounts:     make(map[uint]domain.Account),
		Transactions: make(map[uint]domain.Transaction),
	}
}

func (s *Store) nextIdentifier() uint {
	s.nextID++
	return s.nextID
}

// SeedHolder inserts a holder directly, assigning an identifier when unset.
func (s *Store) SeedHolder(h domain.AccountHolder) domain.AccountHolder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == 0 {
		h.ID = s.nextIdentifier()
	}
	s.Holders[h.ID] = h
	return h
}

// SeedAccount inserts an account directly, assigning an identifier when unset.
func (s *Store) SeedAccount(a domain.Account) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextIdentifier()
	}
	s.Accounts[a.ID] = a
	return a
}

// SeedTransaction inserts a transaction directly, assigning an identifier when
// unset.
func (s *Store) SeedTransaction(t domain.Transaction) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextIdentifier()
	}
	s.Transactions[t.ID] = t
	return t
}

// Factory returns a unit-of-work constructor over store, matching the shape
// the services consume.
func Factory(store *Store) func() (repository.UnitOfWork, error) {
	return func() (repository.UnitOfWork, error) {
		return NewUnitOfWork(store), nil
	}
}

// UnitOfWork is the in-memory repository.UnitOfWork.
type UnitOfWork struct {
	store  *Store
	staged []func(*Store)

	Committed bool
	Disposals int
}

// NewUnitOfWork creates a unit of work over store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// ReadRepository implements repository.UnitOfWork.
func (u *UnitOfWork) ReadRepository(entityType reflect.Type) (any, error) {
	switch entityType {
	case reflect.TypeFor[domain.Account]():
		return accountReader{u}, nil
	case reflect.TypeFor[domain.AccountHolder]():
		return holderReader{u}, nil
	case reflect.TypeFor[domain.Transaction]():
		return transactionReader{u}, nil
	}
	return nil, fmt.Errorf("no repository registered for entity type %s", entityType)
}

// WriteRepository implements repository.UnitOfWork.
func (u *UnitOfWork) WriteRepository(entityType reflect.Type) (any, error) {
	switch entityType {
	case reflect.TypeFor[domain.Account]():
		return accountWriter{u}, nil
	case reflect.TypeFor[domain.AccountHolder]():
		return holderWriter{u}, nil
	case reflect.TypeFor[domain.Transaction]():
		return transactionWriter{u}, nil
	}
	return nil, fmt.Errorf("no repository registered for entity type %s", entityType)
}

// Commit applies every staged change to the store, or none when CommitErr is
// set.
func (u *UnitOfWork) Commit(ctx context.Context) (int64, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.CommitErr != nil {
		u.staged = nil
		return 0, u.store.CommitErr
	}
	affected := int64(len(u.staged))
	for _, apply := range u.staged {
		apply(u.store)
	}
	u.staged = nil
	u.Committed = true
	return affected, nil
}

// Dispose discards anything not committed. Idempotent.
func (u *UnitOfWork) Dispose() error {
	u.Disposals++
	u.staged = nil
	return nil
}

type accountReader struct{ u *UnitOfWork }

func (r accountReader) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	a, ok := r.u.store.Accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r accountReader) GetAll(ctx context.Context) ([]*domain.Account, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.u.store.Accounts))
	for _, a := range r.u.store.Accounts {
		cp := a
		all = append(all, &cp)
	}
	return all, nil
}

func (r accountReader) FindBy(ctx context.Context, query any, args ...any) ([]*domain.Account, error) {
	return nil, fmt.Errorf("unsupported account query %v", query)
}

func (r accountReader) FindOneBy(ctx context.Context, query any, args ...any) (*domain.Account, error) {
	if query != "account_number = ?" || len(args) != 1 {
		return nil, fmt.Errorf("unsupported account query %v", query)
	}
	number, _ := args[0].(string)
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	for _, a := range r.u.store.Accounts {
		if a.AccountNumber == number {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

type holderReader struct{ u *UnitOfWork }

func (r holderReader) GetByID(ctx context.Context, id uint) (*domain.AccountHolder, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	h, ok := r.u.store.Holders[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r holderReader) GetAll(ctx context.Context) ([]*domain.AccountHolder, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	all := make([]*domain.AccountHolder, 0, len(r.u.store.Holders))
	for _, h := range r.u.store.Holders {
		cp := h
		all = append(all, &cp)
	}
	return all, nil
}

func (r holderReader) FindBy(ctx context.Context, query any, args ...any) ([]*domain.AccountHolder, error) {
	return nil, fmt.Errorf("unsupported account holder query %v", query)
}

func (r holderReader) FindOneBy(ctx context.Context, query any, args ...any) (*domain.AccountHolder, error) {
	return nil, fmt.Errorf("unsupported account holder query %v", query)
}

type transactionReader struct{ u *UnitOfWork }

func (r transactionReader) GetByID(ctx context.Context, id uint) (*domain.Transaction, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	t, ok := r.u.store.Transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r transactionReader) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	all := make([]*domain.Transaction, 0, len(r.u.store.Transactions))
	for _, t := range r.u.store.Transactions {
		cp := t
		all = append(all, &cp)
	}
	return all, nil
}

func (r transactionReader) FindBy(ctx context.Context, query any, args ...any) ([]*domain.Transaction, error) {
	if query != "account_id = ?" || len(args) != 1 {
		return nil, fmt.Errorf("unsupported transaction query %v", query)
	}
	accountID, _ := args[0].(uint)
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	var matched []*domain.Transaction
	for _, t := range r.u.store.Transactions {
		if t.AccountID == accountID {
			cp := t
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r transactionReader) FindOneBy(ctx context.Context, query any, args ...any) (*domain.Transaction, error) {
	return nil, fmt.Errorf("unsupported transaction query %v", query)
}

type accountWriter struct{ u *UnitOfWork }

func (w accountWriter) Add(ctx context.Context, a *domain.Account) error {
	w.u.store.mu.Lock()
	if a.ID == 0 {
		a.ID = w.u.store.nextIdentifier()
	}
	w.u.store.mu.Unlock()
	cp := *a
	w.u.staged = append(w.u.staged, func(s *Store) { s.Accounts[cp.ID] = cp })
	return nil
}

// Update emulates the compare-and-swap write of the real repository: the
// version the entity was loaded with must still match the stored row.
func (w accountWriter) Update(ctx context.Context, a *domain.Account) error {
	w.u.store.mu.Lock()
	if w.u.store.StaleUpdates > 0 {
		w.u.store.StaleUpdates--
		w.u.store.mu.Unlock()
		return domain.ErrStaleEntity
	}
	current, ok := w.u.store.Accounts[a.ID]
	w.u.store.mu.Unlock()
	loadedVersion := a.EntityVersion()
	if !ok || current.Version != loadedVersion {
		return domain.ErrStaleEntity
	}
	a.BumpVersion()
	cp := *a
	w.u.staged = append(w.u.staged, func(s *Store) { s.Accounts[cp.ID] = cp })
	return nil
}

func (w accountWriter) Delete(ctx context.Context, a *domain.Account) error {
	id := a.ID
	w.u.staged = append(w.u.staged, func(s *Store) { delete(s.Accounts, id) })
	return nil
}

type holderWriter struct{ u *UnitOfWork }

func (w holderWriter) Add(ctx context.Context, h *domain.AccountHolder) error {
	w.u.store.mu.Lock()
	if h.ID == 0 {
		h.ID = w.u.store.nextIdentifier()
	}
	w.u.store.mu.Unlock()
	cp := *h
	w.u.staged = append(w.u.staged, func(s *Store) { s.Holders[cp.ID] = cp })
	return nil
}

func (w holderWriter) Update(ctx context.Context, h *domain.AccountHolder) error {
	cp := *h
	w.u.staged = append(w.u.staged, func(s *Store) {
		if _, ok := s.Holders[cp.ID]; ok {
			s.Holders[cp.ID] = cp
		}
	})
	return nil
}

func (w holderWriter) Delete(ctx context.Context, h *domain.AccountHolder) error {
	id := h.ID
	w.u.staged = append(w.u.staged, func(s *Store) { delete(s.Holders, id) })
	return nil
}

type transactionWriter struct{ u *UnitOfWork }

func (w transactionWriter) Add(ctx context.Context, t *domain.Transaction) error {
	w.u.store.mu.Lock()
	if t.ID == 0 {
		t.ID = w.u.store.nextIdentifier()
	}
	w.u.store.mu.Unlock()
	cp := *t
	w.u.staged = append(w.u.staged, func(s *Store) { s.Transactions[cp.ID] = cp })
	return nil
}

func (w transactionWriter) Update(ctx context.Context, t *domain.Transaction) error {
	cp := *t
	w.u.staged = append(w.u.staged, func(s *Store) {
		if _, ok := s.Transactions[cp.ID]; ok {
			s.Transactions[cp.ID] = cp
		}
	})
	return nil
}

func (w transactionWriter) Delete(ctx context.Context, t *domain.Transaction) error {
	id := t.ID
	w.u.staged = append(w.u.staged, func(s *Store) { delete(s.Transactions, id) })
	return nil
}
