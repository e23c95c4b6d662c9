// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/service"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// TransactionHandler handles HTTP requests that submit transaction attempts.
type TransactionHandler struct {
	gateway service.GatewayService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(gateway service.GatewayService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// ProcessTransaction handles a transaction attempt through the gateway.
// POST /api/transaction
func (h *TransactionHandler) ProcessTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	resp, err := h.gateway.ProcessTransaction(r.Context(), &req)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	// Declines are a normal outcome of the pipeline, not an HTTP error.
	h.respondWithJSON(w, http.StatusOK, resp)
}

// ProcessTransactionDirect accepts requests addressed to the processor
// directly. They still enter through the gateway so validation and routing
// are never bypassed from the outside.
// POST /api/process
func (h *TransactionHandler) ProcessTransactionDirect(w http.ResponseWriter, r *http.Request) {
	h.ProcessTransaction(w, r)
}

// InitiateTopup handles the customer-facing top-up endpoint, which only
// accepts top-up requests.
// POST /api/customer/topup
func (h *TransactionHandler) InitiateTopup(w http.ResponseWriter, r *http.Request) {
	var req service.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if req.Type != service.RequestTypeTopup {
		h.respondWithJSON(w, http.StatusBadRequest, &service.TransactionResponse{
			Success:   false,
			Message:   "Invalid transaction type for top-up",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp, err := h.gateway.ProcessTransaction(r.Context(), &req)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, resp)
}

// Helper function to send JSON responses.
func (h *TransactionHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
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
func (h *TransactionHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}
