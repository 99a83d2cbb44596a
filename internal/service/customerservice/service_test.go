package customerservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/service/customerservice"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Insert(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return c, args.Error(1)
	}
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return c, args.Error(1)
	}
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func validCustomer() domain.Customer {
	return domain.Customer{
		Name: "Maria", Email: "maria@example.com", Social: "@maria", Address: "Rua A, 10",
		City: "Recife", Phone: "81999990000", CPF: "12345678900",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := customerservice.NewService(repo, logger.NewNop())

	repo.On("Insert", mock.Anything, mock.AnythingOfType("domain.Customer")).Return(nil, nil)

	c, err := svc.Create(context.Background(), validCustomer())

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_InvalidEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := customerservice.NewService(repo, logger.NewNop())

	c := validCustomer()
	c.Email = "nao-e-email"

	_, err := svc.Create(context.Background(), c)

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreate_DuplicatePropagates(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := customerservice.NewService(repo, logger.NewNop())

	dup := apperror.NewValidationError("Já existe um cliente com o mesmo email.")
	repo.On("Insert", mock.Anything, mock.Anything).Return(domain.Customer{}, dup)

	_, err := svc.Create(context.Background(), validCustomer())

	assert.ErrorIs(t, err, dup)
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := customerservice.NewService(repo, logger.NewNop())

	current := validCustomer()
	current.ID = "c1"
	repo.On("FindByID", mock.Anything, "c1").Return(current, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c domain.Customer) bool {
		return c.ID == "c1" && c.City == "Olinda"
	})).Return(nil, nil)

	input := validCustomer()
	input.City = "Olinda"
	updated, err := svc.Update(context.Background(), "c1", input)

	require.NoError(t, err)
	assert.Equal(t, "c1", updated.ID)
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := customerservice.NewService(repo, logger.NewNop())

	repo.On("Delete", mock.Anything, "nope").Return(apperror.NewNotFoundError("Cliente não encontrado."))

	assert.True(t, apperror.IsNotFound(svc.Delete(context.Background(), "nope")))
}
