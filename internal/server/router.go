package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/josh-kwaku/mini-payment/api"
	"github.com/josh-kwaku/mini-payment/internal/handler"
	"github.com/josh-kwaku/mini-payment/internal/middleware"
	"github.com/josh-kwaku/mini-payment/internal/repository"
)

type RouterConfig struct {
	Clients        *handler.ClientHandler
	Health         *handler.HealthHandler
	Idempotency    *repository.IdempotencyRepository
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	idempotent := middleware.Idempotency(cfg.Idempotency, cfg.IdempotencyTTL)
	docs := handler.NewDocsHandler(api.OpenAPISpec, "Mini Payment API Documentation")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", cfg.Health.Liveness)
	mux.HandleFunc("GET /health/ready", cfg.Health.Readiness)
	mux.HandleFunc("GET "+handler.DocsPath, docs.UI)
	mux.HandleFunc("GET "+handler.OpenAPIPath, docs.Document)

	mux.HandleFunc("POST /new_client", cfg.Clients.Create)
	mux.HandleFunc("GET /client_balance", cfg.Clients.Balance)
	mux.Handle("POST /new_credit_transaction", idempotent(http.HandlerFunc(cfg.Clients.Credit)))
	mux.Handle("POST /new_debit_transaction", idempotent(http.HandlerFunc(cfg.Clients.Debit)))
	mux.Handle("POST /store_balances", idempotent(http.HandlerFunc(cfg.Clients.StoreBalances)))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(cfg.Logger),
		middleware.Recovery,
	)
}
