package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidDocumentNumber = errors.New("invalid document number")
	ErrInvalidCountryName    = errors.New("invalid country name")
	ErrInvalidBirthDate      = errors.New("invalid birth date")
	ErrInvalidAmount         = errors.New("amount must not be negative")
	ErrDuplicateIdentity     = errors.New("client already registered")
	ErrUnknownIdentity       = errors.New("client not found")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrExport                = errors.New("balance export failed")
)

type DuplicateIdentityError struct {
	DocumentNumber DocumentNumber
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("%s: document number %d", ErrDuplicateIdentity, e.DocumentNumber)
}

func (e *DuplicateIdentityError) Is(target error) bool { return target == ErrDuplicateIdentity }

type UnknownIdentityError struct {
	ID uuid.UUID
}

func (e *UnknownIdentityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownIdentity, e.ID)
}

func (e *UnknownIdentityError) Is(target error) bool { return target == ErrUnknownIdentity }

type InsufficientBalanceError struct {
	Current decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: current balance %s", ErrInsufficientBalance, FormatAmount(e.Current))
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// FieldError ties a validation failure to the raw input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

// ValidationError collects every field that failed validation in one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Err.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f.Err
	}
	return errs
}

func (e *ValidationError) Add(field string, err error) {
	e.Fields = append(e.Fields, FieldError{Field: field, Err: err})
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExport, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func (e *ExportError) Is(target error) bool { return target == ErrExport }
