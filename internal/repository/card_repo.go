// internal/repository/card_repo.go
package repository

import (
	"context"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"

	"github.com/shopspring/decimal"
)

// CardRepository defines the interface for card store operations.
type CardRepository interface {
	// CreateCard adds a new card using the provided DBExecutor.
	CreateCard(ctx context.Context, q DBExecutor, card *domain.Card) error
	// GetCardByNumber retrieves a card by its 16-digit card number.
	GetCardByNumber(ctx context.Context, q DBExecutor, cardNumber string) (*domain.Card, error)
	// GetCardByNumberForUpdate retrieves a card and locks its row for the
	// duration of the surrounding transaction, serializing concurrent
	// mutations of the same card.
	GetCardByNumberForUpdate(ctx context.Context, q DBExecutor, cardNumber string) (*domain.Card, error)
	// UpdateCardBalance sets the card's balance to newBalance and refreshes
	// updated_at. The balance is written absolutely, not relatively; callers
	// hold the row lock across the read-check-write sequence.
	UpdateCardBalance(ctx context.Context, q DBExecutor, cardNumber string, newBalance decimal.Decimal) error
	// ListCards retrieves all cards (administrative surface).
	ListCards(ctx context.Context, q DBExecutor) ([]domain.Card, error)
	// CountCards returns the number of provisioned cards.
	CountCards(ctx context.Context, q DBExecutor) (int64, error)
}
