// Package ledger holds the in-memory balance ledger. Every exported Store
// method runs under one mutex, so check-then-mutate sequences such as the
// duplicate check in Register or the balance check in Debit are atomic.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/mini-payment/internal/domain"
)

type Store struct {
	mu sync.Mutex

	users      map[uuid.UUID]*domain.UserRecord
	byDocument map[domain.DocumentNumber]uuid.UUID

	exportCounter uint64
	exportDir     string
	format        FilenameFormat

	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Store)

func WithExportDir(dir string) Option {
	return func(s *Store) { s.exportDir = dir }
}

func WithFilenameFormat(f FilenameFormat) Option {
	return func(s *Store) { s.format = f }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:      make(map[uuid.UUID]*domain.UserRecord),
		byDocument: make(map[domain.DocumentNumber]uuid.UUID),
		exportDir:  ".",
		format:     FilenameLegacy,
		now:        time.Now,
		newID:      uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Register(identity domain.Identity) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byDocument[identity.DocumentNumber]; exists {
		return uuid.Nil, fmt.Errorf("Register: %w", &domain.DuplicateIdentityError{DocumentNumber: identity.DocumentNumber})
	}

	id := s.newID()
	for {
		if _, taken := s.users[id]; !taken && id != uuid.Nil {
			break
		}
		id = s.newID()
	}

	s.users[id] = domain.NewUserRecord(identity)
	s.byDocument[identity.DocumentNumber] = id
	return id, nil
}

func (s *Store) Credit(id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("Credit: %w", domain.ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("Credit: %w", &domain.UnknownIdentityError{ID: id})
	}
	u.IncreaseCredit(amount)
	return u.Credit(), nil
}

func (s *Store) Debit(id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("Debit: %w", domain.ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("Debit: %w", &domain.UnknownIdentityError{ID: id})
	}
	if err := u.DecreaseCredit(amount); err != nil {
		return decimal.Decimal{}, fmt.Errorf("Debit: %w", err)
	}
	return u.Credit(), nil
}

func (s *Store) Lookup(id uuid.UUID) (domain.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.UserView{}, fmt.Errorf("Lookup: %w", &domain.UnknownIdentityError{ID: id})
	}
	return u.View(id), nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ExportCounter returns the counter of the last successful export, 0 if none.
func (s *Store) ExportCounter() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportCounter
}
