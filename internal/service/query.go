// internal/service/query.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"
)

// QueryService exposes the read-only reporting surface: card balances and
// ledger history for customers and administrators. It never mutates state.
type QueryService interface {
	GetCardBalance(ctx context.Context, cardNumber string) (*domain.Card, error)
	GetTransactionsByCard(ctx context.Context, cardNumber string) ([]domain.Transaction, error)
	GetTransactionsByStatus(ctx context.Context, status string) ([]domain.Transaction, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// queryService implements the QueryService interface.
type queryService struct {
	dbExecutor      repository.DBExecutor
	cardRepo        repository.CardRepository
	transactionRepo repository.TransactionRepository
}

// NewQueryService creates a new instance of QueryService.
func NewQueryService(
	dbExecutor repository.DBExecutor,
	cardRepo repository.CardRepository,
	transactionRepo repository.TransactionRepository,
) QueryService {
	return &queryService{
		dbExecutor:      dbExecutor,
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
	}
}

// GetCardBalance retrieves the card identified by cardNumber.
func (s *queryService) GetCardBalance(ctx context.Context, cardNumber string) (*domain.Card, error) {
	card, err := s.cardRepo.GetCardByNumber(ctx, s.dbExecutor, cardNumber)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCardNotFound
		}
		return nil, fmt.Errorf("get card balance: %w", err)
	}
	return card, nil
}

// GetTransactionsByCard retrieves the ledger history of a card, newest first.
func (s *queryService) GetTransactionsByCard(ctx context.Context, cardNumber string) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactionsByCardNumber(ctx, s.dbExecutor, cardNumber)
	if err != nil {
		return nil, fmt.Errorf("get transactions by card: %w", err)
	}
	return transactions, nil
}

// GetTransactionsByStatus retrieves all ledger entries with the given
// status, newest first. The status string is case-insensitive.
func (s *queryService) GetTransactionsByStatus(ctx context.Context, status string) ([]domain.Transaction, error) {
	parsed, ok := domain.ParseTransactionStatus(strings.ToUpper(status))
	if !ok {
		return nil, util.ErrInvalidInput
	}
	transactions, err := s.transactionRepo.GetTransactionsByStatus(ctx, s.dbExecutor, parsed)
	if err != nil {
		return nil, fmt.Errorf("get transactions by status: %w", err)
	}
	return transactions, nil
}

// ListCards retrieves all provisioned cards.
func (s *queryService) ListCards(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCards(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// ListTransactions retrieves the entire ledger, newest first.
func (s *queryService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.ListTransactions(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}
