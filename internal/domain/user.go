package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRecord is a registered client. Only Credit changes after construction,
// and only through the methods below.
type UserRecord struct {
	name           UserName
	birthDate      time.Time
	documentNumber DocumentNumber
	country        CountryName
	credit         decimal.Decimal
}

func NewUserRecord(identity Identity) *UserRecord {
	return &UserRecord{
		name:           identity.Name,
		birthDate:      identity.BirthDate,
		documentNumber: identity.DocumentNumber,
		country:        identity.Country,
		credit:         decimal.Zero,
	}
}

func (u *UserRecord) Name() UserName                 { return u.name }
func (u *UserRecord) BirthDate() time.Time           { return u.birthDate }
func (u *UserRecord) DocumentNumber() DocumentNumber { return u.documentNumber }
func (u *UserRecord) Country() CountryName           { return u.country }
func (u *UserRecord) Credit() decimal.Decimal        { return u.credit }

// SameIdentity reports whether both records describe the same client.
// Only the document number is compared.
func (u *UserRecord) SameIdentity(other *UserRecord) bool {
	return u.documentNumber == other.documentNumber
}

// IncreaseCredit expects a non-negative amount; callers validate it first.
func (u *UserRecord) IncreaseCredit(amount decimal.Decimal) {
	u.credit = u.credit.Add(amount)
}

func (u *UserRecord) DecreaseCredit(amount decimal.Decimal) error {
	if u.credit.LessThan(amount) {
		return &InsufficientBalanceError{Current: u.credit}
	}
	u.credit = u.credit.Sub(amount)
	return nil
}

func (u *UserRecord) ResetCredit() {
	u.credit = decimal.Zero
}

func (u *UserRecord) View(id uuid.UUID) UserView {
	return UserView{ID: id, Name: u.name, Balance: u.credit}
}

// UserView is a read-only copy of the parts of a record clients may see.
type UserView struct {
	ID      uuid.UUID
	Name    UserName
	Balance decimal.Decimal
}

// FormatAmount renders a balance with at least two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	places := max(int32(2), -d.Exponent())
	return d.StringFixed(places)
}
