// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(transactionHandler *handler.TransactionHandler, queryHandler *handler.QueryHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Transaction entry points
		r.Post("/transaction", transactionHandler.ProcessTransaction)
		r.Post("/process", transactionHandler.ProcessTransactionDirect)

		// Customer surface
		r.Route("/customer", func(r chi.Router) {
			r.Post("/topup", transactionHandler.InitiateTopup)
			r.Get("/balance/{cardNumber}", queryHandler.GetCardBalance)
			r.Get("/transactions/{cardNumber}", queryHandler.GetCustomerTransactions)
		})

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Get("/transactions", queryHandler.GetAllTransactions)
			r.Get("/transactions/status/{status}", queryHandler.GetTransactionsByStatus)
			r.Get("/cards", queryHandler.GetAllCards)
		})
	})

	return r
}
