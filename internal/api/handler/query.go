// internal/api/handler/query.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/service"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"
)

// QueryHandler handles the read-only customer and admin endpoints.
type QueryHandler struct {
	service service.QueryService
	logger  *slog.Logger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(svc service.QueryService, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		service: svc,
		logger:  logger,
	}
}

// GetCardBalance handles the customer balance request.
// GET /api/customer/balance/{cardNumber}
func (h *QueryHandler) GetCardBalance(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")

	card, err := h.service.GetCardBalance(r.Context(), cardNumber)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cardNumber": card.CardNumber,
		"balance":    card.Balance,
	})
}

// GetCustomerTransactions handles the customer transaction history request.
// GET /api/customer/transactions/{cardNumber}
func (h *QueryHandler) GetCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")

	transactions, err := h.service.GetTransactionsByCard(r.Context(), cardNumber)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transactions)
}

// GetAllTransactions handles the admin request for the full ledger.
// GET /api/admin/transactions
func (h *QueryHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transactions)
}

// GetTransactionsByStatus handles the admin request for ledger entries
// filtered by status.
// GET /api/admin/transactions/status/{status}
func (h *QueryHandler) GetTransactionsByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")

	transactions, err := h.service.GetTransactionsByStatus(r.Context(), status)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transactions)
}

// GetAllCards handles the admin request for all cards.
// GET /api/admin/cards
func (h *QueryHandler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.ListCards(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, cards)
}

// Helper function to send JSON responses.
func (h *QueryHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *QueryHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrCardNotFound):
		statusCode = http.StatusNotFound
		message = "Card not found"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}
