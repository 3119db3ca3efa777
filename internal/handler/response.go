package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/mini-payment/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

func RespondDomainError(w http.ResponseWriter, err error) {
	var (
		verr         *domain.ValidationError
		duplicate    *domain.DuplicateIdentityError
		insufficient *domain.InsufficientBalanceError
	)

	switch {
	case errors.As(err, &verr):
		fields := make([]FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = FieldError{Field: f.Field, Message: f.Err.Error()}
		}
		RespondValidationError(w, fields)
	case errors.As(err, &duplicate):
		RespondAppError(w, ErrDuplicateClient, map[string]any{"document_number": duplicate.DocumentNumber})
	case errors.As(err, &insufficient):
		RespondAppError(w, ErrInsufficientBalance, map[string]string{"current_balance": domain.FormatAmount(insufficient.Current)})
	case errors.Is(err, domain.ErrUnknownIdentity):
		RespondAppError(w, ErrClientNotFound, nil)
	case errors.Is(err, domain.ErrInvalidAmount):
		RespondAppError(w, ErrInvalidAmount, nil)
	case errors.Is(err, domain.ErrExport):
		RespondAppError(w, ErrExportFailed, nil)
	default:
		slog.Error("unhandled domain error", "error", err)
		RespondAppError(w, ErrInternalError, nil)
	}
}
