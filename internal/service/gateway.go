// internal/service/gateway.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"

	"github.com/shopspring/decimal"
)

// cardNumberPattern matches exactly 16 decimal digits.
var cardNumberPattern = regexp.MustCompile(`^\d{16}$`)

// supportedRangePrefix is the only card range this gateway routes onward.
const supportedRangePrefix = "4"

// GatewayService is System 1 of the two-tier pipeline: it validates the
// request shape, applies the card-range routing policy and delegates
// accepted requests to the processor.
type GatewayService interface {
	ProcessTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error)
}

// gatewayService implements the GatewayService interface.
type gatewayService struct {
	processor       ProcessorService
	dbExecutor      repository.DBExecutor // For ledger appends outside the processor's transaction
	transactionRepo repository.TransactionRepository
	logger          *slog.Logger
	now             NowFunc
}

// NewGatewayService creates a new instance of GatewayService.
func NewGatewayService(
	processor ProcessorService,
	dbExecutor repository.DBExecutor,
	transactionRepo repository.TransactionRepository,
	logger *slog.Logger,
	now NowFunc,
) GatewayService {
	return &gatewayService{
		processor:       processor,
		dbExecutor:      dbExecutor,
		transactionRepo: transactionRepo,
		logger:          logger,
		now:             now,
	}
}

// ProcessTransaction validates and routes a transaction attempt.
//
// Validation failures short-circuit with a declined response and no ledger
// record: malformed input never reached business logic, so it is not
// audited. Requests outside the supported card range are a business
// decline and do produce a ledger entry; the card store is deliberately
// not consulted first, so the response reveals nothing about whether a
// card of that range exists.
func (s *gatewayService) ProcessTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error) {
	if !cardNumberPattern.MatchString(req.CardNumber) {
		return s.declinedResponse("Invalid card number format"), nil
	}

	if !req.Amount.GreaterThan(decimal.Zero) {
		return s.declinedResponse("Invalid amount"), nil
	}

	if req.Type != RequestTypeWithdraw && req.Type != RequestTypeTopup {
		return s.declinedResponse("Invalid transaction type"), nil
	}

	if !strings.HasPrefix(req.CardNumber, supportedRangePrefix) {
		transaction := domain.NewTransaction(req.CardNumber, domain.TransactionTypeFromRequest(req.Type), req.Amount, s.now())
		transaction.Decline("Card range not supported")
		if err := s.transactionRepo.CreateTransaction(ctx, s.dbExecutor, transaction); err != nil {
			return nil, fmt.Errorf("gateway: failed to record declined transaction: %w", err)
		}
		s.logger.Info("transaction declined at gateway",
			"card_number", req.CardNumber,
			"reason", "Card range not supported",
			"transaction_id", transaction.ID,
		)
		return s.declinedResponse("Card range not supported"), nil
	}

	// Route to System 2; processor errors propagate untranslated.
	return s.processor.ProcessTransaction(ctx, req)
}

func (s *gatewayService) declinedResponse(message string) *TransactionResponse {
	return &TransactionResponse{
		Success:   false,
		Message:   message,
		Timestamp: s.now(),
	}
}
