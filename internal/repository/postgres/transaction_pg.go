// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Methods receive a DBExecutor directly, so no connection is stored.
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (card_number, type, amount, status, message, balance_after, timestamp)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.CardNumber,
		transaction.Type,
		transaction.Amount,
		transaction.Status,
		transaction.Message,
		transaction.BalanceAfter,
		transaction.Timestamp,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByCardNumber retrieves all ledger entries for a card, newest first.
func (r *TransactionRepository) GetTransactionsByCardNumber(ctx context.Context, q repository.DBExecutor, cardNumber string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, card_number, type, amount, status, message, balance_after, timestamp
		FROM transactions
		WHERE card_number = $1
		ORDER BY timestamp DESC, id DESC`
	if err := q.SelectContext(ctx, &transactions, query, cardNumber); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for card %s: %w", cardNumber, err)
	}
	return transactions, nil
}

// GetTransactionsByStatus retrieves all ledger entries with the given status, newest first.
func (r *TransactionRepository) GetTransactionsByStatus(ctx context.Context, q repository.DBExecutor, status domain.TransactionStatus) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, card_number, type, amount, status, message, balance_after, timestamp
		FROM transactions
		WHERE status = $1
		ORDER BY timestamp DESC, id DESC`
	if err := q.SelectContext(ctx, &transactions, query, status); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions with status %s: %w", status, err)
	}
	return transactions, nil
}

// ListTransactions retrieves every ledger entry, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, card_number, type, amount, status, message, balance_after, timestamp
		FROM transactions
		ORDER BY timestamp DESC, id DESC`
	if err := q.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
