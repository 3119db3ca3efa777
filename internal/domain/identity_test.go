package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain name", raw: "Martin Noblia"},
		{name: "exactly 256 graphemes", raw: strings.Repeat("a", 256)},
		{name: "256 combining-mark graphemes", raw: strings.Repeat("e\u0301", 256)},
		{name: "257 combining-mark graphemes", raw: strings.Repeat("e\u0301", 257), wantErr: true},
		{name: "257 graphemes", raw: strings.Repeat("a", 257), wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: " \t\n ", wantErr: true},
		{name: "non-ascii letters", raw: "Ñandú Ürquiza"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseUserName(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.raw, got.String())
		})
	}
}

func TestParseUserNameForbiddenCharacters(t *testing.T) {
	for _, c := range []string{"/", "(", ")", `"`, "<", ">", `\`, "{", "}"} {
		t.Run(c, func(t *testing.T) {
			_, err := ParseUserName(c)
			assert.ErrorIs(t, err, ErrInvalidName)

			_, err = ParseUserName("Juan " + c + " Perez")
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestParseDocumentNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     int64
		wantErr bool
	}{
		{name: "zero", raw: 0},
		{name: "typical", raw: 29653164},
		{name: "upper bound", raw: 100_000_000},
		{name: "above upper bound", raw: 100_000_001, wantErr: true},
		{name: "negative", raw: -1, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDocumentNumber(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidDocumentNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DocumentNumber(tc.raw), got)
		})
	}
}

func TestParseCountryName(t *testing.T) {
	for _, c := range []string{"Argentina", "Brazil", "Chile", "Ecuador", "Paraguay", "Uruguay", "Peru"} {
		got, err := ParseCountryName(c)
		require.NoError(t, err, c)
		assert.Equal(t, CountryName(c), got)
	}

	got, err := ParseCountryName("  ")
	require.NoError(t, err)
	assert.Equal(t, CountryName(""), got)

	for _, c := range []string{"Bolivia", "argentina", "Argentina "} {
		_, err := ParseCountryName(c)
		assert.ErrorIs(t, err, ErrInvalidCountryName, c)
	}
}

func TestParseBirthDate(t *testing.T) {
	for _, raw := range []string{"1982-09-27", "1982-9-27", " 1982-9-27 "} {
		d, err := ParseBirthDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, time.Date(1982, time.September, 27, 0, 0, 0, 0, time.UTC), d, raw)
	}

	d, err := ParseBirthDate("2000-1-5")
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())

	for _, raw := range []string{"", "27/09/1982", "1982-13-01", "1982-2-30", "82-9-27", "1982-9-27x", "yesterday"} {
		_, err := ParseBirthDate(raw)
		assert.ErrorIs(t, err, ErrInvalidBirthDate, raw)
	}
}
