// internal/domain/card.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Card represents a provisioned bank card with a single balance.
type Card struct {
	ID         int64           `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	CardNumber string          `db:"card_number" json:"cardNumber"`  // Unique 16-digit card number
	PinHash    string          `db:"pin_hash" json:"-"`              // SHA-256 hex digest of the PIN, never serialized
	Balance    decimal.Decimal `db:"balance" json:"balance"`         // Current balance, NUMERIC(10, 2) in DB, never negative
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`    // Timestamp of creation
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`    // Refreshed on every balance mutation
}

// NewCard creates a new Card instance.
func NewCard(cardNumber, pinHash string, balance decimal.Decimal) *Card {
	now := time.Now().UTC()
	return &Card{
		CardNumber: cardNumber,
		PinHash:    pinHash,
		Balance:    balance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
