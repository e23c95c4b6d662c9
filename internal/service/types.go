// internal/service/types.go
package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request-level transaction type strings; matched case-sensitively.
const (
	RequestTypeWithdraw = "withdraw"
	RequestTypeTopup    = "topup"
)

// TransactionRequest is the inbound payload for a transaction attempt.
type TransactionRequest struct {
	CardNumber string          `json:"cardNumber"`
	Pin        string          `json:"pin"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

// TransactionResponse is the outcome of a transaction attempt.
// Optional fields are populated only on success.
type TransactionResponse struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	CardNumber      string           `json:"cardNumber,omitempty"`
	TransactionType string           `json:"transactionType,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	TransactionID   string           `json:"transactionId,omitempty"`
}

// NowFunc supplies timestamps to services so tests can control time.
type NowFunc func() time.Time
