package handler

import (
	"net/http"
	"path/filepath"

	"github.com/josh-kwaku/mini-payment/internal/domain"
)

type exportDTO struct {
	File    string `json:"file"`
	Counter uint64 `json:"counter"`
	Records int    `json:"records"`
	Total   string `json:"total"`
}

func (h *ClientHandler) StoreBalances(w http.ResponseWriter, r *http.Request) {
	res, err := h.ledger.Snapshot(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, exportDTO{
		File:    filepath.Base(res.Path),
		Counter: res.Counter,
		Records: res.Records,
		Total:   domain.FormatAmount(res.Total),
	})
}
