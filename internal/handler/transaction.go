package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/mini-payment/internal/domain"
	"github.com/josh-kwaku/mini-payment/internal/logging"
)

type transactionRequest struct {
	ClientID string           `json:"client_id"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (r transactionRequest) Validate() []FieldError {
	var errs []FieldError

	if r.ClientID == "" {
		errs = append(errs, FieldError{Field: "client_id", Message: "required"})
	} else if _, err := uuid.Parse(r.ClientID); err != nil {
		errs = append(errs, FieldError{Field: "client_id", Message: "must be a UUID"})
	}

	if r.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if r.Amount.IsNegative() {
		errs = append(errs, FieldError{Field: "amount", Message: "must not be negative"})
	}

	return errs
}

type applyFunc func(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)

func (h *ClientHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.transaction(w, r, "credit", h.ledger.Credit)
}

func (h *ClientHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.transaction(w, r, "debit", h.ledger.Debit)
}

func (h *ClientHandler) transaction(w http.ResponseWriter, r *http.Request, kind string, apply applyFunc) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	id := uuid.MustParse(req.ClientID)
	balance, err := apply(r.Context(), id, *req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Warn(kind+" rejected", "client_id", id, "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceDTO{
		ClientID: id,
		Balance:  domain.FormatAmount(balance),
	})
}
