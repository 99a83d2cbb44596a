package customerservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/validation"
)

// CustomerRepository é o contrato de persistência dos clientes.
type CustomerRepository interface {
	Insert(ctx context.Context, c domain.Customer) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   CustomerRepository
	logger logger.Logger
	now    func() time.Time
}

func NewService(repo CustomerRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create valida e cadastra o cliente. Duplicidades voltam como erro de validação.
func (s *Service) Create(ctx context.Context, input domain.Customer) (domain.Customer, error) {
	if err := validation.Struct(input); err != nil {
		return domain.Customer{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Customer{}, apperror.NewInternalError("falha ao gerar ID do cliente", err)
	}
	c := input
	c.ID = id.String()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt

	created, err := s.repo.Insert(ctx, c)
	if err != nil {
		return domain.Customer{}, err
	}
	s.logger.Info("Cliente cadastrado.", map[string]interface{}{"customer_id": created.ID})
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// Update substitui os dados do cliente mantendo id e data de criação.
func (s *Service) Update(ctx context.Context, id string, input domain.Customer) (domain.Customer, error) {
	if err := validation.Struct(input); err != nil {
		return domain.Customer{}, err
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	c := input
	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now()
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Cliente removido.", map[string]interface{}{"customer_id": id})
	return nil
}
