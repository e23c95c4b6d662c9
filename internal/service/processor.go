// internal/service/processor.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/pin"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"
	"github.com/sanjaybh2003/PayTabs-Assignment/pkg/db"

	"github.com/shopspring/decimal"
)

// ProcessorService is System 2 of the two-tier pipeline: given a request
// that passed gateway validation and routing, it verifies the PIN, mutates
// the balance and appends a ledger entry, all within one database
// transaction.
type ProcessorService interface {
	ProcessTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error)
}

// processorService implements the ProcessorService interface.
type processorService struct {
	dbBeginner      db.DBTxBeginner
	cardRepo        repository.CardRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	logger          *slog.Logger
	now             NowFunc
}

// NewProcessorService creates a new instance of ProcessorService.
func NewProcessorService(
	dbBeginner db.DBTxBeginner,
	cardRepo repository.CardRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
	now NowFunc,
) ProcessorService {
	return &processorService{
		dbBeginner:      dbBeginner,
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
		now:             now,
	}
}

// ProcessTransaction applies one transaction attempt as a single atomic
// unit of work. The card row is locked for the duration of the
// read-check-write sequence, so two concurrent withdrawals against the
// same card can never both observe the same pre-mutation balance.
//
// Business declines return a declined response with a nil error and are
// recorded in the ledger before the response is produced. Infrastructure
// failures return a non-nil error; the deferred rollback then discards any
// partial mutation.
func (s *processorService) ProcessTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("processor: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("processor: transaction controller does not implement DBExecutor")
	}

	card, err := s.cardRepo.GetCardByNumberForUpdate(ctx, txExecutor, req.CardNumber)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return s.decline(ctx, txExecutor, txController, req, "Invalid card")
		}
		return nil, fmt.Errorf("processor: failed to look up card: %w", err)
	}

	if !pin.Verify(req.Pin, card.PinHash) {
		return s.decline(ctx, txExecutor, txController, req, "Invalid PIN")
	}

	switch req.Type {
	case RequestTypeWithdraw:
		if card.Balance.LessThan(req.Amount) {
			return s.decline(ctx, txExecutor, txController, req, "Insufficient balance")
		}
		newBalance := card.Balance.Sub(req.Amount)
		return s.commitMutation(ctx, txExecutor, txController, req, newBalance, "Withdrawal successful")
	case RequestTypeTopup:
		// Top-ups are unconditional; there is no upper bound on the
		// resulting balance.
		newBalance := card.Balance.Add(req.Amount)
		return s.commitMutation(ctx, txExecutor, txController, req, newBalance, "Top-up successful")
	default:
		// The gateway has already rejected unknown types; this branch only
		// triggers when the processor is invoked directly.
		return s.decline(ctx, txExecutor, txController, req, "Invalid transaction type")
	}
}

// commitMutation persists the new balance and the SUCCESS ledger entry,
// then commits both as one unit.
func (s *processorService) commitMutation(
	ctx context.Context,
	q repository.DBExecutor,
	txController db.TxController,
	req *TransactionRequest,
	newBalance decimal.Decimal,
	message string,
) (*TransactionResponse, error) {
	if err := s.cardRepo.UpdateCardBalance(ctx, q, req.CardNumber, newBalance); err != nil {
		return nil, fmt.Errorf("processor: failed to update card balance: %w", err)
	}

	transaction := domain.NewTransaction(req.CardNumber, domain.TransactionTypeFromRequest(req.Type), req.Amount, s.now())
	transaction.Succeed(message, newBalance)
	if err := s.transactionRepo.CreateTransaction(ctx, q, transaction); err != nil {
		return nil, fmt.Errorf("processor: failed to record transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("processor: failed to commit transaction: %w", err)
	}

	s.logger.Info("transaction processed",
		"card_number", req.CardNumber,
		"type", req.Type,
		"transaction_id", transaction.ID,
	)

	amount := req.Amount
	return &TransactionResponse{
		Success:         true,
		Message:         message,
		CardNumber:      req.CardNumber,
		TransactionType: req.Type,
		Amount:          &amount,
		BalanceAfter:    &newBalance,
		Timestamp:       transaction.Timestamp,
		TransactionID:   strconv.FormatInt(transaction.ID, 10),
	}, nil
}

// decline records a DECLINED ledger entry, commits it so the audit record
// is durable before the response is final, and returns the decline.
func (s *processorService) decline(
	ctx context.Context,
	q repository.DBExecutor,
	txController db.TxController,
	req *TransactionRequest,
	message string,
) (*TransactionResponse, error) {
	transaction := domain.NewTransaction(req.CardNumber, domain.TransactionTypeFromRequest(req.Type), req.Amount, s.now())
	transaction.Decline(message)
	if err := s.transactionRepo.CreateTransaction(ctx, q, transaction); err != nil {
		return nil, fmt.Errorf("processor: failed to record declined transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("processor: failed to commit declined transaction: %w", err)
	}

	s.logger.Info("transaction declined",
		"card_number", req.CardNumber,
		"reason", message,
		"transaction_id", transaction.ID,
	)

	return &TransactionResponse{
		Success:   false,
		Message:   message,
		Timestamp: transaction.Timestamp,
	}, nil
}
