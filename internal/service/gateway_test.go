// internal/service/gateway_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/domain"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProcessorService is a mock implementation of ProcessorService.
type MockProcessorService struct {
	mock.Mock
}

func (m *MockProcessorService) ProcessTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TransactionResponse), args.Error(1)
}

// newTestGateway wires a gateway over the given mocks with a deterministic clock.
func newTestGateway(processor *MockProcessorService, executor *MockDBExecutor, transactionRepo *MockTransactionRepository) GatewayService {
	return NewGatewayService(processor, executor, transactionRepo, util.GetLogger(), fixedNow)
}

func gatewayRequest(cardNumber, txType, amount string) *TransactionRequest {
	return &TransactionRequest{
		CardNumber: cardNumber,
		Pin:        "1234",
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
	}
}

func TestGatewayValidation(t *testing.T) {
	cases := []struct {
		name    string
		request *TransactionRequest
		message string
	}{
		{"CardNumberTooShort", gatewayRequest("123", RequestTypeWithdraw, "10.00"), "Invalid card number format"},
		{"CardNumberTooLong", gatewayRequest("40001234567890123", RequestTypeWithdraw, "10.00"), "Invalid card number format"},
		{"CardNumberNonNumeric", gatewayRequest("4000abcd56789012", RequestTypeWithdraw, "10.00"), "Invalid card number format"},
		{"ZeroAmount", gatewayRequest("4000123456789012", RequestTypeWithdraw, "0.00"), "Invalid amount"},
		{"NegativeAmount", gatewayRequest("4000123456789012", RequestTypeWithdraw, "-5.00"), "Invalid amount"},
		{"UppercaseType", gatewayRequest("4000123456789012", "WITHDRAW", "10.00"), "Invalid transaction type"},
		{"UnknownType", gatewayRequest("4000123456789012", "transfer", "10.00"), "Invalid transaction type"},
		{"EmptyType", gatewayRequest("4000123456789012", "", "10.00"), "Invalid transaction type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			processor := new(MockProcessorService)
			executor := new(MockDBExecutor)
			transactionRepo := new(MockTransactionRepository)
			gateway := newTestGateway(processor, executor, transactionRepo)

			resp, err := gateway.ProcessTransaction(ctx, tc.request)

			assert.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Message)
			assert.Equal(t, testNow, resp.Timestamp)

			// Validation failures are not business events: nothing is
			// recorded and the processor is never consulted.
			transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
			processor.AssertNotCalled(t, "ProcessTransaction", mock.Anything, mock.Anything)
		})
	}
}

func TestGatewayRouting(t *testing.T) {
	t.Run("UnsupportedCardRange", func(t *testing.T) {
		ctx := context.Background()
		processor := new(MockProcessorService)
		executor := new(MockDBExecutor)
		transactionRepo := new(MockTransactionRepository)
		gateway := newTestGateway(processor, executor, transactionRepo)

		transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusDeclined &&
				tx.Message == "Card range not supported" &&
				tx.CardNumber == "5000123456789012" &&
				tx.Type == domain.TransactionTypeWithdraw &&
				tx.Timestamp.Equal(testNow)
		})).Return(nil).Once()

		resp, err := gateway.ProcessTransaction(ctx, gatewayRequest("5000123456789012", RequestTypeWithdraw, "100.00"))

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Card range not supported", resp.Message)

		// The card store is never consulted and the processor is never
		// reached for an unsupported range.
		processor.AssertNotCalled(t, "ProcessTransaction", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, transactionRepo)
	})

	t.Run("SupportedRangeDelegatesToProcessor", func(t *testing.T) {
		ctx := context.Background()
		processor := new(MockProcessorService)
		executor := new(MockDBExecutor)
		transactionRepo := new(MockTransactionRepository)
		gateway := newTestGateway(processor, executor, transactionRepo)

		req := gatewayRequest("4000123456789012", RequestTypeTopup, "50.00")
		processorResp := &TransactionResponse{
			Success:   true,
			Message:   "Top-up successful",
			Timestamp: testNow,
		}
		processor.On("ProcessTransaction", ctx, req).Return(processorResp, nil).Once()

		resp, err := gateway.ProcessTransaction(ctx, req)

		assert.NoError(t, err)
		assert.Same(t, processorResp, resp)

		transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, processor)
	})

	t.Run("ProcessorErrorPropagatesUntranslated", func(t *testing.T) {
		ctx := context.Background()
		processor := new(MockProcessorService)
		executor := new(MockDBExecutor)
		transactionRepo := new(MockTransactionRepository)
		gateway := newTestGateway(processor, executor, transactionRepo)

		req := gatewayRequest("4000123456789012", RequestTypeWithdraw, "50.00")
		processorErr := errors.New("processor: failed to begin transaction")
		processor.On("ProcessTransaction", ctx, req).Return(nil, processorErr).Once()

		resp, err := gateway.ProcessTransaction(ctx, req)

		assert.ErrorIs(t, err, processorErr)
		assert.Nil(t, resp)
		mock.AssertExpectationsForObjects(t, processor)
	})

	t.Run("LedgerAppendFailure", func(t *testing.T) {
		ctx := context.Background()
		processor := new(MockProcessorService)
		executor := new(MockDBExecutor)
		transactionRepo := new(MockTransactionRepository)
		gateway := newTestGateway(processor, executor, transactionRepo)

		transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		resp, err := gateway.ProcessTransaction(ctx, gatewayRequest("5000123456789012", RequestTypeWithdraw, "100.00"))

		// The declined outcome is not final until the ledger entry is
		// durable, so a failed append surfaces as an error.
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record declined transaction")
		assert.Nil(t, resp)
		mock.AssertExpectationsForObjects(t, transactionRepo)
	})
}
