package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/mini-payment/internal/domain"
	"github.com/josh-kwaku/mini-payment/internal/ledger"
	"github.com/josh-kwaku/mini-payment/internal/logging"
)

type ledgerStore interface {
	Register(identity domain.Identity) (uuid.UUID, error)
	Credit(id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Lookup(id uuid.UUID) (domain.UserView, error)
	Snapshot() (ledger.SnapshotResult, error)
}

type LedgerService struct {
	store ledgerStore
}

func NewLedgerService(store ledgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// RegisterRequest carries unvalidated client input.
type RegisterRequest struct {
	Name           string
	BirthDate      string
	DocumentNumber int64
	Country        string
}

// Identity validates every field and reports all failures at once.
func (r RegisterRequest) Identity() (domain.Identity, error) {
	verr := &domain.ValidationError{}

	name, err := domain.ParseUserName(r.Name)
	if err != nil {
		verr.Add("client_name", err)
	}
	birthDate, err := domain.ParseBirthDate(r.BirthDate)
	if err != nil {
		verr.Add("birth_date", err)
	}
	doc, err := domain.ParseDocumentNumber(r.DocumentNumber)
	if err != nil {
		verr.Add("document_number", err)
	}
	country, err := domain.ParseCountryName(r.Country)
	if err != nil {
		verr.Add("country", err)
	}

	if !verr.Empty() {
		return domain.Identity{}, verr
	}
	return domain.Identity{
		Name:           name,
		BirthDate:      birthDate,
		DocumentNumber: doc,
		Country:        country,
	}, nil
}

func (s *LedgerService) Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error) {
	log := logging.FromContext(ctx)

	identity, err := req.Identity()
	if err != nil {
		return uuid.Nil, fmt.Errorf("Register: %w", err)
	}

	id, err := s.store.Register(identity)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Register: %w", err)
	}

	log.Info("client registered",
		"client_id", id,
		"country", identity.Country,
	)
	return id, nil
}

func (s *LedgerService) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("Credit: %w", domain.ErrInvalidAmount)
	}

	balance, err := s.store.Credit(id, amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("Credit: %w", err)
	}

	logging.FromContext(ctx).Info("credit applied",
		"client_id", id,
		"amount", domain.FormatAmount(amount),
		"balance", domain.FormatAmount(balance),
	)
	return balance, nil
}

func (s *LedgerService) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("Debit: %w", domain.ErrInvalidAmount)
	}

	balance, err := s.store.Debit(id, amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("Debit: %w", err)
	}

	logging.FromContext(ctx).Info("debit applied",
		"client_id", id,
		"amount", domain.FormatAmount(amount),
		"balance", domain.FormatAmount(balance),
	)
	return balance, nil
}

func (s *LedgerService) Balance(_ context.Context, id uuid.UUID) (domain.UserView, error) {
	view, err := s.store.Lookup(id)
	if err != nil {
		return domain.UserView{}, fmt.Errorf("Balance: %w", err)
	}
	return view, nil
}

func (s *LedgerService) Snapshot(ctx context.Context) (ledger.SnapshotResult, error) {
	log := logging.FromContext(ctx)

	res, err := s.store.Snapshot()
	if err != nil {
		log.Error("balance export failed, balances kept", "error", err)
		return ledger.SnapshotResult{}, fmt.Errorf("Snapshot: %w", err)
	}

	log.Info("balances exported",
		"path", res.Path,
		"counter", res.Counter,
		"records", res.Records,
		"total", domain.FormatAmount(res.Total),
	)
	return res, nil
}
