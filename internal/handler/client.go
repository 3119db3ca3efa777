package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/mini-payment/internal/domain"
	"github.com/josh-kwaku/mini-payment/internal/ledger"
	"github.com/josh-kwaku/mini-payment/internal/logging"
	"github.com/josh-kwaku/mini-payment/internal/service"
)

type ledgerService interface {
	Register(ctx context.Context, req service.RegisterRequest) (uuid.UUID, error)
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Balance(ctx context.Context, id uuid.UUID) (domain.UserView, error)
	Snapshot(ctx context.Context) (ledger.SnapshotResult, error)
}

type ClientHandler struct {
	ledger ledgerService
}

func NewClientHandler(svc ledgerService) *ClientHandler {
	return &ClientHandler{ledger: svc}
}

type createClientRequest struct {
	ClientName string `json:"client_name"`
	BirthDate  string `json:"birth_date"`
	// BirdDate is the field name existing clients send; it wins when both are set.
	BirdDate       string `json:"bird_date"`
	DocumentNumber *int64 `json:"document_number"`
	Country        string `json:"country"`
}

func (r createClientRequest) birthDate() string {
	if r.BirdDate != "" {
		return r.BirdDate
	}
	return r.BirthDate
}

func (r createClientRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ClientName == "" {
		errs = append(errs, FieldError{Field: "client_name", Message: "required"})
	}
	if r.birthDate() == "" {
		errs = append(errs, FieldError{Field: "birth_date", Message: "required"})
	}
	if r.DocumentNumber == nil {
		errs = append(errs, FieldError{Field: "document_number", Message: "required"})
	}
	return errs
}

type createClientResponse struct {
	ClientID uuid.UUID `json:"client_id"`
}

type balanceDTO struct {
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name,omitempty"`
	Balance    string    `json:"balance"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	id, err := h.ledger.Register(r.Context(), service.RegisterRequest{
		Name:           req.ClientName,
		BirthDate:      req.birthDate(),
		DocumentNumber: *req.DocumentNumber,
		Country:        req.Country,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("client registration rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, createClientResponse{ClientID: id})
}

func (h *ClientHandler) Balance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("client_id")
	if raw == "" {
		RespondValidationError(w, []FieldError{{Field: "client_id", Message: "required"}})
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "client_id", Message: "must be a UUID"}})
		return
	}

	view, err := h.ledger.Balance(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceDTO{
		ClientID:   view.ID,
		ClientName: view.Name.String(),
		Balance:    domain.FormatAmount(view.Balance),
	})
}
