package main

import (
	"database/sql"
	"net/http"

	"github.com/josh-kwaku/travelmate/internal/config"
	"github.com/josh-kwaku/travelmate/internal/handler"
	"github.com/josh-kwaku/travelmate/internal/metrics"
	"github.com/josh-kwaku/travelmate/internal/middleware"
	"github.com/josh-kwaku/travelmate/internal/repository"
	"github.com/josh-kwaku/travelmate/internal/service"
)

func newRouter(db *sql.DB, cfg *config.Config, m *metrics.Metrics, idempotency *repository.IdempotencyRepository) http.Handler {
	tripRepo := repository.NewTripRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	tripSvc := service.NewTripService(tripRepo, db)
	participantSvc := service.NewParticipantService(tripRepo, participantRepo, expenseRepo, db)
	currencySvc := service.NewCurrencyService(currencyRepo, cfg.BaseCurrency, db)
	expenseSvc := service.NewExpenseService(tripRepo, participantRepo, expenseRepo, currencyRepo, cfg.BaseCurrency, db)
	settlementSvc := service.NewSettlementService(snapshotRepo, tripRepo, transferRepo, m, db)

	health := handler.NewHealthHandler(db, version)
	trips := handler.NewTripHandler(tripSvc)
	participants := handler.NewParticipantHandler(participantSvc)
	currencies := handler.NewCurrencyHandler(currencySvc)
	expenses := handler.NewExpenseHandler(expenseSvc, cfg.BaseCurrency)
	settlements := handler.NewSettlementHandler(settlementSvc, cfg.BaseCurrency)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /docs", handler.ServeDocs)
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec)

	mux.HandleFunc("GET /api/v1/currencies", currencies.List)

	mux.HandleFunc("POST /api/v1/trips", trips.Create)
	mux.HandleFunc("GET /api/v1/trips", trips.List)
	mux.HandleFunc("GET /api/v1/trips/{tripID}", trips.Get)
	mux.HandleFunc("DELETE /api/v1/trips/{tripID}", trips.Delete)

	mux.HandleFunc("GET /api/v1/trips/{tripID}/participants", participants.List)
	mux.HandleFunc("POST /api/v1/trips/{tripID}/participants", participants.Add)
	mux.HandleFunc("DELETE /api/v1/trips/{tripID}/participants/{participantID}", participants.Remove)

	mux.HandleFunc("GET /api/v1/trips/{tripID}/expenses", expenses.List)
	mux.HandleFunc("POST /api/v1/trips/{tripID}/expenses", expenses.Create)
	mux.HandleFunc("GET /api/v1/expenses/{expenseID}", expenses.Get)
	mux.HandleFunc("PUT /api/v1/expenses/{expenseID}", expenses.Update)
	mux.HandleFunc("DELETE /api/v1/expenses/{expenseID}", expenses.Delete)

	mux.HandleFunc("GET /api/v1/trips/{tripID}/settlement", settlements.Get)
	mux.HandleFunc("POST /api/v1/trips/{tripID}/settlement/done", settlements.Confirm)
	mux.HandleFunc("GET /api/v1/trips/{tripID}/transfers", settlements.ListTransfers)

	var h http.Handler = mux
	h = middleware.Idempotency(idempotency, cfg.IdempotencyTTL)(h)
	h = middleware.Metrics(m)(h)
	h = middleware.Logging(h)
	h = middleware.Tracing(h)
	h = middleware.Recovery(h)
	return h
}
