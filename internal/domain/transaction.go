// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a card transaction.
type TransactionType string

const (
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTopup    TransactionType = "TOPUP"
)

// TransactionStatus defines the terminal outcome of a transaction attempt.
type TransactionStatus string

const (
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusDeclined TransactionStatus = "DECLINED"
)

// Transaction is one ledger entry for a single processing attempt.
// Records are append-only: once created they are never updated or deleted.
type Transaction struct {
	ID           int64             `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	CardNumber   string            `db:"card_number" json:"cardNumber"`      // Card the attempt referenced; not a hard FK, declines for unknown cards are still recorded
	Type         TransactionType   `db:"type" json:"type"`                   // WITHDRAW or TOPUP
	Amount       decimal.Decimal   `db:"amount" json:"amount"`               // Requested amount, NUMERIC(10, 2) in DB
	Status       TransactionStatus `db:"status" json:"status"`               // SUCCESS or DECLINED
	Message      string            `db:"message" json:"message"`             // Human-readable outcome reason
	BalanceAfter *decimal.Decimal  `db:"balance_after" json:"balanceAfter"`  // Balance after a successful mutation, nil when declined
	Timestamp    time.Time         `db:"timestamp" json:"timestamp"`         // When the attempt was processed
}

// NewTransaction creates a new Transaction instance for a processing attempt.
// The outcome is set afterwards via Decline or Succeed.
func NewTransaction(cardNumber string, txType TransactionType, amount decimal.Decimal, at time.Time) *Transaction {
	return &Transaction{
		CardNumber: cardNumber,
		Type:       txType,
		Amount:     amount,
		Timestamp:  at,
	}
}

// Decline marks the attempt as declined with the given reason.
func (t *Transaction) Decline(message string) {
	t.Status = TransactionStatusDeclined
	t.Message = message
}

// Succeed marks the attempt as successful and records the post-mutation balance.
func (t *Transaction) Succeed(message string, balanceAfter decimal.Decimal) {
	t.Status = TransactionStatusSuccess
	t.Message = message
	t.BalanceAfter = &balanceAfter
}

// TransactionTypeFromRequest maps the request-level type string to the
// ledger enum. Callers validate the string first; anything other than
// "withdraw" is treated as a top-up, mirroring request construction.
func TransactionTypeFromRequest(requestType string) TransactionType {
	if requestType == "withdraw" {
		return TransactionTypeWithdraw
	}
	return TransactionTypeTopup
}

// ParseTransactionStatus converts a status string (case-insensitive at the
// call site) into a TransactionStatus, reporting whether it is known.
func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch TransactionStatus(s) {
	case TransactionStatusSuccess, TransactionStatusDeclined:
		return TransactionStatus(s), true
	default:
		return "", false
	}
}
