package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goloja/internal/domain"
)

func TestOrder_MarkPaid(t *testing.T) {
	o := domain.Order{ID: "o1"}
	assert.Equal(t, domain.OrderCreated, o.Status())

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o.MarkPaid(domain.PaymentResult{ID: "PAY-1", Status: "COMPLETED", UpdateTime: "2026-03-01T12:00:00Z"}, at)

	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, at, *o.PaidAt)
	assert.Equal(t, "PAY-1", o.PaymentResult.ID)
	assert.False(t, o.IsDelivered)
	assert.Nil(t, o.DeliveredAt)
	assert.Equal(t, domain.OrderPaid, o.Status())

	// Reaplicar sobrescreve
	later := at.Add(time.Hour)
	o.MarkPaid(domain.PaymentResult{ID: "PAY-2"}, later)
	assert.Equal(t, later, *o.PaidAt)
	assert.Equal(t, "PAY-2", o.PaymentResult.ID)
}

func TestOrder_MarkDeliveredIndependentOfPayment(t *testing.T) {
	o := domain.Order{ID: "o1"}
	at := time.Now().UTC()

	o.MarkDelivered(at)

	assert.True(t, o.IsDelivered)
	require.NotNil(t, o.DeliveredAt)
	assert.False(t, o.IsPaid)
	assert.Nil(t, o.PaidAt)
	assert.Equal(t, domain.OrderDelivered, o.Status())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int64
	}{
		{0, 30, 0},
		{1, 30, 1},
		{30, 30, 1},
		{31, 30, 2},
		{4, 3, 2},
		{10, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.TotalPages(tc.total, tc.pageSize), "total=%d pageSize=%d", tc.total, tc.pageSize)
	}
}

func TestProductQuery_Skip(t *testing.T) {
	assert.Equal(t, int64(0), domain.ProductQuery{Page: 1, PageSize: 30}.Skip())
	assert.Equal(t, int64(60), domain.ProductQuery{Page: 3, PageSize: 30}.Skip())
}
