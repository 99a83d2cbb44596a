package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goloja/internal/domain"
	"goloja/internal/pkg/logger"
	"goloja/internal/service/userservice"
)

// ProductStore recebe o catálogo completo, substituindo o atual.
type ProductStore interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// UserStore grava contas pelo email.
type UserStore interface {
	Upsert(ctx context.Context, user domain.User) error
}

// Result resume o que foi gravado.
type Result struct {
	Users    int `json:"users"`
	Products int `json:"products"`
}

type Loader struct {
	products ProductStore
	users    UserStore
	logger   logger.Logger
	now      func() time.Time
}

func NewLoader(products ProductStore, users UserStore, log logger.Logger) *Loader {
	return &Loader{
		products: products,
		users:    users,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Load substitui os produtos e grava as contas de exemplo.
// Rodar de novo recria o catálogo com IDs novos.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	now := l.now()

	for _, f := range Users {
		hash, err := userservice.HashPassword(f.Password)
		if err != nil {
			return Result{}, err
		}
		err = l.users.Upsert(ctx, domain.User{
			ID:           uuid.NewString(),
			Name:         f.Name,
			Email:        f.Email,
			PasswordHash: hash,
			IsAdmin:      f.IsAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return Result{}, fmt.Errorf("falha ao gravar usuário %s: %w", f.Email, err)
		}
	}

	products := make([]domain.Product, len(Products))
	for i, p := range Products {
		id, err := uuid.NewV7()
		if err != nil {
			return Result{}, fmt.Errorf("falha ao gerar ID de produto: %w", err)
		}
		p.ID = id.String()
		p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		p.UpdatedAt = p.CreatedAt
		products[i] = p
	}
	if err := l.products.ReplaceAll(ctx, products); err != nil {
		return Result{}, err
	}

	res := Result{Users: len(Users), Products: len(products)}
	l.logger.Info("Seed concluído.", map[string]interface{}{"users": res.Users, "products": res.Products})
	return res, nil
}
