// internal/repository/postgres/card_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CardRepository implements repository.CardRepository for PostgreSQL.
type CardRepository struct {
	// Methods receive a DBExecutor directly, so no connection is stored.
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(db *sqlx.DB) repository.CardRepository {
	return &CardRepository{}
}

// CreateCard inserts a new card into the database using the provided DBExecutor.
func (r *CardRepository) CreateCard(ctx context.Context, q repository.DBExecutor, card *domain.Card) error {
	query := `INSERT INTO cards (card_number, pin_hash, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query, card.CardNumber, card.PinHash, card.Balance, card.CreatedAt, card.UpdatedAt).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// GetCardByNumber retrieves a card by its card number using the provided DBExecutor.
func (r *CardRepository) GetCardByNumber(ctx context.Context, q repository.DBExecutor, cardNumber string) (*domain.Card, error) {
	var card domain.Card
	query := `SELECT id, card_number, pin_hash, balance, created_at, updated_at FROM cards WHERE card_number = $1`
	err := q.GetContext(ctx, &card, query, cardNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card by number %s: %w", cardNumber, err)
	}
	return &card, nil
}

// GetCardByNumberForUpdate retrieves a card and locks its row until the
// surrounding transaction commits or rolls back. Concurrent attempts against
// the same card queue on this lock; other cards are unaffected.
func (r *CardRepository) GetCardByNumberForUpdate(ctx context.Context, q repository.DBExecutor, cardNumber string) (*domain.Card, error) {
	var card domain.Card
	query := `SELECT id, card_number, pin_hash, balance, created_at, updated_at FROM cards WHERE card_number = $1 FOR UPDATE`
	err := q.GetContext(ctx, &card, query, cardNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card by number %s for update: %w", cardNumber, err)
	}
	return &card, nil
}

// UpdateCardBalance sets the balance of a card using the provided DBExecutor.
func (r *CardRepository) UpdateCardBalance(ctx context.Context, q repository.DBExecutor, cardNumber string, newBalance decimal.Decimal) error {
	query := `UPDATE cards SET balance = $1, updated_at = $2 WHERE card_number = $3`
	result, err := q.ExecContext(ctx, query, newBalance, time.Now().UTC(), cardNumber)
	if err != nil {
		return fmt.Errorf("failed to update balance for card %s: %w", cardNumber, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating balance for card %s: %w", cardNumber, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating balance for card %s: %w", cardNumber, util.ErrNotFound)
	}
	return nil
}

// ListCards retrieves all cards using the provided DBExecutor.
func (r *CardRepository) ListCards(ctx context.Context, q repository.DBExecutor) ([]domain.Card, error) {
	cards := []domain.Card{}
	query := `SELECT id, card_number, pin_hash, balance, created_at, updated_at FROM cards ORDER BY id`
	if err := q.SelectContext(ctx, &cards, query); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CountCards returns the number of cards using the provided DBExecutor.
func (r *CardRepository) CountCards(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var count int64
	if err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM cards`); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}
