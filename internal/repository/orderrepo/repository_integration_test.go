//go:build integration

package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/database/dbtest"
	"goloja/internal/pkg/logger"
	"goloja/internal/repository/orderrepo"
)

func setup(t *testing.T) *orderrepo.OrderRepository {
	t.Helper()
	repo := orderrepo.NewOrderRepository(dbtest.SetupMongo(t), 10*time.Second, logger.NewNop())
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	return repo
}

func TestTotals_EmptyCollection(t *testing.T) {
	repo := setup(t)

	totals, err := repo.Totals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OrderTotals{}, totals)

	daily, err := repo.DailySales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, daily)
}

func TestTotalsAndDailySales(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	for _, o := range []domain.Order{
		{ID: "o1", User: "u1", TotalPrice: 100, CreatedAt: day2},
		{ID: "o2", User: "u2", TotalPrice: 50, CreatedAt: day1},
	} {
		_, err := repo.Insert(ctx, o)
		require.NoError(t, err)
	}

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.NumOrders)
	assert.Equal(t, 150.0, totals.TotalSales)

	daily, err := repo.DailySales(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.DailySales{
		{Date: "2026-03-01", OrderCount: 1, SalesSum: 50},
		{Date: "2026-03-02", OrderCount: 1, SalesSum: 100},
	}, daily)
}

func TestTransitions(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.Order{ID: "o1", User: "u1", TotalPrice: 10, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	at := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	delivered, err := repo.MarkDelivered(ctx, "o1", at)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.False(t, delivered.IsPaid)
	require.NotNil(t, delivered.DeliveredAt)
	assert.True(t, at.Equal(*delivered.DeliveredAt))

	paid, err := repo.MarkPaid(ctx, "o1", domain.PaymentResult{ID: "PAY-1", Status: "COMPLETED"}, at)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.True(t, paid.IsDelivered)
	require.NotNil(t, paid.PaymentResult)
	assert.Equal(t, "PAY-1", paid.PaymentResult.ID)

	mine, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestMissingOrder(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	_, err := repo.MarkPaid(ctx, "nope", domain.PaymentResult{}, time.Now())
	assert.True(t, apperror.IsNotFound(err))

	_, err = repo.MarkDelivered(ctx, "nope", time.Now())
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(repo.Delete(ctx, "nope")))
}
