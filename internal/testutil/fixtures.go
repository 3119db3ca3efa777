package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/mini-payment/internal/domain"
)

// ExportDay is the date used by tests that assert on snapshot file names.
// Day and month are single digits so the legacy name is "392025_n.DAT".
var ExportDay = time.Date(2025, time.September, 3, 12, 0, 0, 0, time.Local)

const DefaultBirthDate = "1982-09-27"

// Identity builds a valid identity or fails the test.
func Identity(t *testing.T, name string, doc int64, country string) domain.Identity {
	t.Helper()

	n, err := domain.ParseUserName(name)
	require.NoError(t, err)
	d, err := domain.ParseDocumentNumber(doc)
	require.NoError(t, err)
	c, err := domain.ParseCountryName(country)
	require.NoError(t, err)
	b, err := domain.ParseBirthDate(DefaultBirthDate)
	require.NoError(t, err)

	return domain.Identity{Name: n, BirthDate: b, DocumentNumber: d, Country: c}
}

func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func ClockOn(y int, m time.Month, d int) func() time.Time {
	return FixedClock(time.Date(y, m, d, 12, 0, 0, 0, time.Local))
}
