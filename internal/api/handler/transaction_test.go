// internal/api/handler/transaction_test.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sanjaybh2003/PayTabs-Assignment/internal/service"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGatewayService is a mock implementation of service.GatewayService.
type MockGatewayService struct {
	mock.Mock
}

func (m *MockGatewayService) ProcessTransaction(ctx context.Context, req *service.TransactionRequest) (*service.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionResponse), args.Error(1)
}

func TestProcessTransactionHandler(t *testing.T) {
	t.Run("SuccessfulRequestPassesThrough", func(t *testing.T) {
		gateway := new(MockGatewayService)
		h := NewTransactionHandler(gateway, util.GetLogger())

		balance := decimal.RequireFromString("800.00")
		gateway.On("ProcessTransaction", mock.Anything, mock.MatchedBy(func(req *service.TransactionRequest) bool {
			return req.CardNumber == "4000123456789012" &&
				req.Type == service.RequestTypeWithdraw &&
				req.Amount.Equal(decimal.RequireFromString("200.00"))
		})).Return(&service.TransactionResponse{
			Success:      true,
			Message:      "Withdrawal successful",
			CardNumber:   "4000123456789012",
			BalanceAfter: &balance,
			Timestamp:    time.Now().UTC(),
		}, nil).Once()

		body := `{"cardNumber":"4000123456789012","pin":"1234","amount":"200.00","type":"withdraw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.ProcessTransaction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp service.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Withdrawal successful", resp.Message)
		mock.AssertExpectationsForObjects(t, gateway)
	})

	t.Run("DeclineStillReturns200", func(t *testing.T) {
		gateway := new(MockGatewayService)
		h := NewTransactionHandler(gateway, util.GetLogger())

		gateway.On("ProcessTransaction", mock.Anything, mock.Anything).Return(&service.TransactionResponse{
			Success:   false,
			Message:   "Card range not supported",
			Timestamp: time.Now().UTC(),
		}, nil).Once()

		body := `{"cardNumber":"5000123456789012","pin":"9999","amount":"10.00","type":"withdraw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.ProcessTransaction(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp service.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Card range not supported", resp.Message)
	})

	t.Run("MalformedJSONIsRejected", func(t *testing.T) {
		gateway := new(MockGatewayService)
		h := NewTransactionHandler(gateway, util.GetLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.ProcessTransaction(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		gateway.AssertNotCalled(t, "ProcessTransaction", mock.Anything, mock.Anything)
	})
}

func TestInitiateTopupHandler(t *testing.T) {
	t.Run("RejectsNonTopupType", func(t *testing.T) {
		gateway := new(MockGatewayService)
		h := NewTransactionHandler(gateway, util.GetLogger())

		body := `{"cardNumber":"4000123456789012","pin":"1234","amount":"50.00","type":"withdraw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/customer/topup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.InitiateTopup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp service.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid transaction type for top-up", resp.Message)
		gateway.AssertNotCalled(t, "ProcessTransaction", mock.Anything, mock.Anything)
	})

	t.Run("ForwardsTopupToGateway", func(t *testing.T) {
		gateway := new(MockGatewayService)
		h := NewTransactionHandler(gateway, util.GetLogger())

		gateway.On("ProcessTransaction", mock.Anything, mock.MatchedBy(func(req *service.TransactionRequest) bool {
			return req.Type == service.RequestTypeTopup
		})).Return(&service.TransactionResponse{
			Success:   true,
			Message:   "Top-up successful",
			Timestamp: time.Now().UTC(),
		}, nil).Once()

		body := `{"cardNumber":"4000123456789012","pin":"1234","amount":"50.00","type":"topup"}`
		req := httptest.NewRequest(http.MethodPost, "/api/customer/topup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.InitiateTopup(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mock.AssertExpectationsForObjects(t, gateway)
	})
}
