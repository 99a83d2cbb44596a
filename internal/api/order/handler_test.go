package order_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goloja/internal/api/order"
	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/middleware"
	"goloja/internal/pkg/token"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, userID string, req domain.PlaceOrderRequest) (domain.Order, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, id string, result domain.PaymentResult) (domain.Order, error) {
	args := m.Called(ctx, id, result)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderService) MarkDelivered(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) GetByID(ctx context.Context, id string, caller token.Identity) (domain.Order, error) {
	args := m.Called(ctx, id, caller)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) Summarize(ctx context.Context) (domain.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func withCaller(req *http.Request, id token.Identity) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), id))
}

func TestPlaceHandler_UsesCallerAsOwner(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	expectedReq := domain.PlaceOrderRequest{
		OrderItems:    []domain.PlaceOrderItem{{Product: "p1", Quantity: 2}},
		PaymentMethod: "PayPal",
	}
	svc.On("Place", mock.Anything, "u1", expectedReq).Return(domain.Order{ID: "o1", User: "u1", TotalPrice: 240}, nil)

	body := `{"orderItems":[{"_id":"p1","quantity":2}],"paymentMethod":"PayPal"}`
	req := withCaller(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), token.Identity{UserID: "u1"})
	rec := httptest.NewRecorder()
	h.PlaceHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got order.PlacedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "o1", got.Order.ID)
	assert.False(t, got.Order.IsPaid)
	svc.AssertExpectations(t)
}

func TestPlaceHandler_WithoutIdentity(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.PlaceHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceHandler_EmptyCart(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	svc.On("Place", mock.Anything, "u1", mock.Anything).
		Return(domain.Order{}, apperror.NewValidationError("O pedido precisa de ao menos um item."))

	req := withCaller(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"orderItems":[]}`)), token.Identity{UserID: "u1"})
	rec := httptest.NewRecorder()
	h.PlaceHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayHandler(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	result := domain.PaymentResult{ID: "PAY-1", Status: "COMPLETED", UpdateTime: "2026-03-01T12:00:00Z", EmailAddress: "buyer@example.com"}
	paid := domain.Order{ID: "o1"}
	svc.On("MarkPaid", mock.Anything, "o1", result).Return(paid, nil)

	body := `{"id":"PAY-1","status":"COMPLETED","update_time":"2026-03-01T12:00:00Z","email_address":"buyer@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/pay", strings.NewReader(body))
	req.SetPathValue("id", "o1")
	rec := httptest.NewRecorder()
	h.PayHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pedido pago")
	svc.AssertExpectations(t)
}

func TestDeliverHandler_NotFound(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	svc.On("MarkDelivered", mock.Anything, "nope").Return(domain.Order{}, apperror.NewNotFoundError("Pedido não encontrado."))

	req := httptest.NewRequest(http.MethodPut, "/api/orders/nope/deliver", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.DeliverHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMineHandler(t *testing.T) {
	svc := new(MockOrderService)
	h := order.NewHandler(svc, logger.NewNop())

	svc.On("ListMine", mock.Anything, "u1").Return([]domain.Order{{ID: "o1", User: "u1"}}, nil)

	req := withCaller(httptest.NewRequest(http.MethodGet, "/api/orders/mine", nil), token.Identity{UserID: "u1"})
	rec := httptest.NewRecorder()
	h.MineHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}
