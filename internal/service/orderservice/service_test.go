package orderservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"
	"goloja/internal/service/orderservice"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return order, args.Error(1)
	}
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id string, result domain.PaymentResult, at time.Time) (domain.Order, error) {
	args := m.Called(ctx, id, result, at)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkDelivered(ctx context.Context, id string, at time.Time) (domain.Order, error) {
	args := m.Called(ctx, id, at)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Totals(ctx context.Context) (domain.OrderTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.OrderTotals), args.Error(1)
}

func (m *MockOrderRepository) DailySales(ctx context.Context) ([]domain.DailySales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DailySales), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockCatalog) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService() (*orderservice.Service, *MockOrderRepository, *MockCatalog, *MockCustomers) {
	orders, catalog, customers := new(MockOrderRepository), new(MockCatalog), new(MockCustomers)
	svc := orderservice.NewService(orders, catalog, customers, logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })
	return svc, orders, catalog, customers
}

func TestPlace_EmptyItemsRejected(t *testing.T) {
	svc, orders, catalog, _ := newService()

	_, err := svc.Place(context.Background(), "u1", domain.PlaceOrderRequest{PaymentMethod: "PayPal"})

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestPlace_ZeroQuantityRejected(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.Place(context.Background(), "u1", domain.PlaceOrderRequest{
		OrderItems:    []domain.PlaceOrderItem{{Product: "p1", Quantity: 0}},
		PaymentMethod: "PayPal",
	})

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestPlace_ComputesTotalsFromCatalog(t *testing.T) {
	svc, orders, catalog, _ := newService()

	catalog.On("FindByIDs", mock.Anything, []string{"p1", "p2"}).Return(map[string]domain.Product{
		"p1": {ID: "p1", Name: "Nike Slim shirt", Slug: "nike-slim-shirt", Image: "/images/p1.jpg", Price: 0.1},
		"p2": {ID: "p2", Name: "Adidas Fit Pant", Slug: "adidas-fit-pant", Image: "/images/p4.jpg", Price: 65},
	}, nil)
	orders.On("Insert", mock.Anything, mock.AnythingOfType("domain.Order")).Return(nil, nil)

	order, err := svc.Place(context.Background(), "u1", domain.PlaceOrderRequest{
		OrderItems: []domain.PlaceOrderItem{
			{Product: "p1", Quantity: 3},
			{Product: "p2", Quantity: 2},
		},
		PaymentMethod: "PayPal",
		ShippingPrice: 10,
		TaxPrice:      0.2,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.User)
	assert.Equal(t, 130.3, order.ItemsPrice)
	assert.Equal(t, 140.5, order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Equal(t, domain.OrderCreated, order.Status())
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "nike-slim-shirt", order.OrderItems[0].Slug)
	assert.Equal(t, fixedNow, order.CreatedAt)
	orders.AssertExpectations(t)
}

func TestPlace_UnknownProduct(t *testing.T) {
	svc, orders, catalog, _ := newService()

	catalog.On("FindByIDs", mock.Anything, []string{"ghost"}).Return(map[string]domain.Product{}, nil)

	_, err := svc.Place(context.Background(), "u1", domain.PlaceOrderRequest{
		OrderItems:    []domain.PlaceOrderItem{{Product: "ghost", Quantity: 2}},
		PaymentMethod: "PayPal",
	})

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestMarkPaid_UsesClock(t *testing.T) {
	svc, orders, _, _ := newService()

	result := domain.PaymentResult{ID: "PAY-1", Status: "COMPLETED"}
	paid := domain.Order{ID: "o1"}
	paid.MarkPaid(result, fixedNow)
	orders.On("MarkPaid", mock.Anything, "o1", result, fixedNow).Return(paid, nil)

	got, err := svc.MarkPaid(context.Background(), "o1", result)

	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, fixedNow, *got.PaidAt)
	orders.AssertExpectations(t)
}

func TestMarkDelivered_NotFound(t *testing.T) {
	svc, orders, _, _ := newService()

	orders.On("MarkDelivered", mock.Anything, "nope", fixedNow).
		Return(domain.Order{}, apperror.NewNotFoundError("Pedido não encontrado."))

	_, err := svc.MarkDelivered(context.Background(), "nope")

	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_NotFound(t *testing.T) {
	svc, orders, _, _ := newService()

	orders.On("Delete", mock.Anything, "nope").Return(apperror.NewNotFoundError("Pedido não encontrado."))

	assert.True(t, apperror.IsNotFound(svc.Delete(context.Background(), "nope")))
}

func TestGetByID_Ownership(t *testing.T) {
	svc, orders, _, _ := newService()

	orders.On("FindByID", mock.Anything, "o1").Return(domain.Order{ID: "o1", User: "owner"}, nil)

	_, err := svc.GetByID(context.Background(), "o1", token.Identity{UserID: "owner"})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "o1", token.Identity{UserID: "admin", IsAdmin: true})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "o1", token.Identity{UserID: "intruso"})
	var forbidden *apperror.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestSummarize(t *testing.T) {
	svc, orders, catalog, customers := newService()

	orders.On("Totals", mock.Anything).Return(domain.OrderTotals{NumOrders: 2, TotalSales: 150}, nil)
	orders.On("DailySales", mock.Anything).Return([]domain.DailySales{{Date: "2026-03-01", OrderCount: 2, SalesSum: 150}}, nil)
	customers.On("Count", mock.Anything).Return(int64(3), nil)
	catalog.On("CountByCategory", mock.Anything).Return([]domain.CategoryCount(nil), nil)

	summary, err := svc.Summarize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.NumOrders)
	assert.Equal(t, 150.0, summary.TotalSales)
	assert.Equal(t, int64(3), summary.NumCustomers)
	assert.Len(t, summary.DailyOrders, 1)
	assert.NotNil(t, summary.ProductCategories)
}
