// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
)

// TransactionRepository defines the interface for the transaction ledger.
// The ledger is append-only: there are no update or delete operations.
type TransactionRepository interface {
	// CreateTransaction appends a new ledger entry using the provided
	// DBExecutor and assigns its identity.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByCardNumber retrieves all ledger entries for a card,
	// newest first.
	GetTransactionsByCardNumber(ctx context.Context, q DBExecutor, cardNumber string) ([]domain.Transaction, error)
	// GetTransactionsByStatus retrieves all ledger entries with the given
	// status, newest first.
	GetTransactionsByStatus(ctx context.Context, q DBExecutor, status domain.TransactionStatus) ([]domain.Transaction, error)
	// ListTransactions retrieves every ledger entry, newest first
	// (administrative surface).
	ListTransactions(ctx context.Context, q DBExecutor) ([]domain.Transaction, error)
}
