package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/mini-payment/internal/domain"
	"github.com/josh-kwaku/mini-payment/internal/testutil"
)

func TestRegisterRejectsDuplicateDocumentNumber(t *testing.T) {
	s := NewStore()

	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 29653164, "Argentina"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	_, err = s.Register(testutil.Identity(t, "Juan Perez", 29653164, "Chile"))
	require.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	var dup *domain.DuplicateIdentityError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, domain.DocumentNumber(29653164), dup.DocumentNumber)
	assert.Equal(t, 1, s.Len())
}

func TestRegisterRedrawsTakenIDs(t *testing.T) {
	fixed := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	other := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	ids := []uuid.UUID{fixed, uuid.Nil, fixed, other}
	next := 0
	s := NewStore(WithIDGenerator(func() uuid.UUID {
		id := ids[next]
		next++
		return id
	}))

	first, err := s.Register(testutil.Identity(t, "A", 1, "Peru"))
	require.NoError(t, err)
	second, err := s.Register(testutil.Identity(t, "B", 2, "Peru"))
	require.NoError(t, err)

	assert.Equal(t, fixed, first)
	assert.Equal(t, other, second)
}

func TestCredit(t *testing.T) {
	s := NewStore()
	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 1, "Argentina"))
	require.NoError(t, err)

	tests := []struct {
		amount string
		want   string
	}{
		{"100.00", "100.00"},
		{"0", "100.00"},
		{"0.50", "100.50"},
	}
	for _, tc := range tests {
		got, err := s.Credit(id, testutil.Amount(tc.amount))
		require.NoError(t, err)
		assert.Equal(t, tc.want, domain.FormatAmount(got))

		view, err := s.Lookup(id)
		require.NoError(t, err)
		assert.True(t, view.Balance.Equal(got))
	}
}

func TestCreditAndDebitErrors(t *testing.T) {
	s := NewStore()
	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 1, "Argentina"))
	require.NoError(t, err)
	_, err = s.Credit(id, testutil.Amount("10"))
	require.NoError(t, err)

	unknown := uuid.New()

	tests := []struct {
		name    string
		op      func() (decimal.Decimal, error)
		wantErr error
	}{
		{"credit unknown", func() (decimal.Decimal, error) { return s.Credit(unknown, testutil.Amount("1")) }, domain.ErrUnknownIdentity},
		{"debit unknown", func() (decimal.Decimal, error) { return s.Debit(unknown, testutil.Amount("1")) }, domain.ErrUnknownIdentity},
		{"credit negative", func() (decimal.Decimal, error) { return s.Credit(id, testutil.Amount("-1")) }, domain.ErrInvalidAmount},
		{"debit negative", func() (decimal.Decimal, error) { return s.Debit(id, testutil.Amount("-1")) }, domain.ErrInvalidAmount},
		{"debit above balance", func() (decimal.Decimal, error) { return s.Debit(id, testutil.Amount("10.01")) }, domain.ErrInsufficientBalance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.op()
			require.ErrorIs(t, err, tc.wantErr)

			view, err := s.Lookup(id)
			require.NoError(t, err)
			assert.Equal(t, "10.00", domain.FormatAmount(view.Balance))
		})
	}

	_, err = s.Lookup(unknown)
	var unk *domain.UnknownIdentityError
	require.True(t, errors.As(err, &unk))
	assert.Equal(t, unknown, unk.ID)
}

func TestDebitInsufficientReportsCurrentBalance(t *testing.T) {
	s := NewStore()
	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 1, "Argentina"))
	require.NoError(t, err)
	_, err = s.Credit(id, testutil.Amount("100.00"))
	require.NoError(t, err)

	_, err = s.Debit(id, testutil.Amount("150.00"))
	var insufficient *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "100.00", domain.FormatAmount(insufficient.Current))

	got, err := s.Debit(id, testutil.Amount("100.00"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestConcurrentRegistrations(t *testing.T) {
	const n = 200
	s := NewStore()

	identities := make([]domain.Identity, n)
	for i := range n {
		identities[i] = testutil.Identity(t, fmt.Sprintf("client %d", i), int64(i), "Uruguay")
	}

	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Register(identities[i])
			assert.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	seen := make(map[uuid.UUID]struct{}, n)
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, s.Len())
}

func TestConcurrentDuplicateRegistrationSucceedsOnce(t *testing.T) {
	const n = 50
	s := NewStore()

	identities := make([]domain.Identity, n)
	for i := range n {
		identities[i] = testutil.Identity(t, fmt.Sprintf("client %d", i), 42, "Brazil")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(identities[i])
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, s.Len())
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	s := NewStore()
	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 1, "Argentina"))
	require.NoError(t, err)
	_, err = s.Credit(id, testutil.Amount("10"))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Debit(id, testutil.Amount("1")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	view, err := s.Lookup(id)
	require.NoError(t, err)
	assert.True(t, view.Balance.IsZero())
}

func TestScenario(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(
		WithExportDir(dir),
		WithClock(testutil.FixedClock(testutil.ExportDay)),
	)

	id, err := s.Register(testutil.Identity(t, "Martin Noblia", 29653164, "Argentina"))
	require.NoError(t, err)

	_, err = s.Register(testutil.Identity(t, "Juan Perez", 29653164, "Chile"))
	require.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	bal, err := s.Credit(id, testutil.Amount("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", domain.FormatAmount(bal))

	_, err = s.Debit(id, testutil.Amount("150.00"))
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	bal, err = s.Debit(id, testutil.Amount("40.00"))
	require.NoError(t, err)
	assert.Equal(t, "60.00", domain.FormatAmount(bal))

	res, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Counter)
	assert.Equal(t, "392025_1.DAT", filepathBase(res.Path))
	assert.Equal(t, id.String()+" 60.00\n", readFile(t, res.Path))

	view, err := s.Lookup(id)
	require.NoError(t, err)
	assert.Equal(t, "0.00", domain.FormatAmount(view.Balance))
	assert.Equal(t, domain.UserName("Martin Noblia"), view.Name)
}
