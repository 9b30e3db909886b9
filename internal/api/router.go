// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api/handler"
	"fintrack/internal/api/types"
)

// Service identity reported by the health check.
const (
	ServiceName    = "FinanceAI-Advisor"
	ServiceVersion = "1.0.0"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(transactionHandler *handler.TransactionHandler, logger *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, types.Health{
			Status:  "healthy",
			Service: ServiceName,
			Version: ServiceVersion,
		})
	})

	r.Route("/api/v1/transactions", func(r chi.Router) {
		r.Get("/", transactionHandler.ListTransactions)
		r.Post("/", transactionHandler.CreateTransaction)
		r.Get("/summary", transactionHandler.GetSummary)
		r.Get("/export", transactionHandler.ExportTransactions)
		r.Get("/{transactionID}", transactionHandler.GetTransaction)
		r.Put("/{transactionID}", transactionHandler.UpdateTransaction)
		r.Delete("/{transactionID}", transactionHandler.DeleteTransaction)
	})

	return r
}
