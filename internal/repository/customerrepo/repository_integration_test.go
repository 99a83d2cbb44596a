//go:build integration

package customerrepo_test

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
	"goloja/internal/repository/customerrepo"
)

func customer(id, email, cpf string) domain.Customer {
	return domain.Customer{
		ID: id, Name: "Maria", Email: email, Social: "@" + id, Address: "Rua " + id,
		City: "Recife", Phone: "81-" + id, CPF: cpf,
	}
}

func TestCustomerCRUD(t *testing.T) {
	repo := customerrepo.NewCustomerRepository(dbtest.SetupMongo(t), 10*time.Second, logger.NewNop())
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	_, err := repo.Insert(ctx, customer("c1", "maria@example.com", "111"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, customer("c2", "maria@example.com", "222"))
	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	c, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	c.City = "Olinda"
	_, err = repo.Update(ctx, c)
	require.NoError(t, err)

	c, err = repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Olinda", c.City)

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.True(t, apperror.IsNotFound(repo.Delete(ctx, "c1")))

	_, err = repo.Update(ctx, customer("c9", "x@example.com", "999"))
	assert.True(t, apperror.IsNotFound(err))
}
