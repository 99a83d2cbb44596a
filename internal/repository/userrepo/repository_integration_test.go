//go:build integration

package userrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/database/dbtest"
	"goloja/internal/pkg/logger"
	"goloja/internal/repository/userrepo"
)

func newUser(email string) domain.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.User{
		ID: uuid.NewString(), Name: "Maria", Email: email, PasswordHash: "hash",
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestUserRepository(t *testing.T) {
	db := dbtest.SetupPostgres(t, "../../../sql")
	repo := userrepo.NewUserRepository(db, 5*time.Second, logger.NewNop())
	ctx := context.Background()

	u, err := repo.Save(ctx, newUser("maria@example.com"))
	require.NoError(t, err)

	t.Run("email duplicado", func(t *testing.T) {
		_, err := repo.Save(ctx, newUser("maria@example.com"))
		var validationErr *apperror.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("busca por email e id", func(t *testing.T) {
		byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		byID, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash", byID.PasswordHash)

		_, err = repo.FindByEmail(ctx, "ninguem@example.com")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("atualização", func(t *testing.T) {
		u.Name = "Maria Silva"
		u.IsAdmin = true
		_, err := repo.Update(ctx, u)
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", got.Name)
		assert.True(t, got.IsAdmin)

		_, err = repo.Update(ctx, newUser("outra@example.com"))
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("id que não é UUID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "abc")
		assert.True(t, apperror.IsNotFound(err))

		bad := newUser("abc@example.com")
		bad.ID = "abc"
		_, err = repo.Update(ctx, bad)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("upsert por email", func(t *testing.T) {
		again := newUser("maria@example.com")
		again.Name = "Maria Seed"
		require.NoError(t, repo.Upsert(ctx, again))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Maria Seed", all[0].Name)
	})
}
