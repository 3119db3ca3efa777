package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

const (
	MaxNameGraphemes  = 256
	MaxDocumentNumber = 100_000_000
	BirthDateLayout   = "2006-1-2"
)

const forbiddenNameChars = `/()"<>\{}`

type UserName string

func ParseUserName(raw string) (UserName, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: must not be empty", ErrInvalidName)
	}
	if uniseg.GraphemeClusterCount(raw) > MaxNameGraphemes {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameGraphemes)
	}
	if i := strings.IndexAny(raw, forbiddenNameChars); i >= 0 {
		return "", fmt.Errorf("%w: forbidden character %q", ErrInvalidName, raw[i])
	}
	return UserName(raw), nil
}

func (n UserName) String() string { return string(n) }

type DocumentNumber uint32

// ParseDocumentNumber takes a signed value because that is what arrives off the wire.
func ParseDocumentNumber(raw int64) (DocumentNumber, error) {
	if raw < 0 || raw > MaxDocumentNumber {
		return 0, fmt.Errorf("%w: %d out of range [0, %d]", ErrInvalidDocumentNumber, raw, MaxDocumentNumber)
	}
	return DocumentNumber(raw), nil
}

type CountryName string

const (
	CountryArgentina CountryName = "Argentina"
	CountryBrazil    CountryName = "Brazil"
	CountryChile     CountryName = "Chile"
	CountryEcuador   CountryName = "Ecuador"
	CountryParaguay  CountryName = "Paraguay"
	CountryUruguay   CountryName = "Uruguay"
	CountryPeru      CountryName = "Peru"
)

var allowedCountries = map[CountryName]struct{}{
	CountryArgentina: {},
	CountryBrazil:    {},
	CountryChile:     {},
	CountryEcuador:   {},
	CountryParaguay:  {},
	CountryUruguay:   {},
	CountryPeru:      {},
}

// ParseCountryName accepts the allow-list and, for now, a blank value.
// TODO: decide whether a blank country should be rejected; existing clients still send it.
func ParseCountryName(raw string) (CountryName, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	c := CountryName(raw)
	if _, ok := allowedCountries[c]; !ok {
		return "", fmt.Errorf("%w: %q is not supported", ErrInvalidCountryName, raw)
	}
	return c, nil
}

func (c CountryName) String() string { return string(c) }

// ParseBirthDate accepts Y-M-D with or without zero padding on month and day.
func ParseBirthDate(raw string) (time.Time, error) {
	d, err := time.Parse(BirthDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-M-D", ErrInvalidBirthDate)
	}
	return d, nil
}

// Identity is the validated tuple a user registers with.
type Identity struct {
	Name           UserName
	BirthDate      time.Time
	DocumentNumber DocumentNumber
	Country        CountryName
}
