package productservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/validation"
)

// ProductRepository define o contrato que este Serviço espera da camada de persistência.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
	FindByCoding(ctx context.Context, coding string) (domain.Product, error)
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as operações do catálogo.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Search executa a busca filtrada, ordenada e paginada do catálogo.
func (s *Service) Search(ctx context.Context, params domain.ProductSearchParams) (domain.ProductPage, error) {
	return s.page(ctx, BuildQuery(params))
}

// AdminPage lista o catálogo paginado, sem filtros.
func (s *Service) AdminPage(ctx context.Context, page, pageSize string) (domain.ProductPage, error) {
	return s.page(ctx, PageQuery(page, pageSize))
}

func (s *Service) page(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	products, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return domain.ProductPage{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return domain.ProductPage{
		Products:      products,
		CountProducts: total,
		Page:          q.Page,
		Pages:         domain.TotalPages(total, q.PageSize),
	}, nil
}

// ListAll devolve todos os produtos.
func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// Categories devolve as categorias distintas.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "category")
}

// Codings devolve os códigos distintos.
func (s *Service) Codings(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "codings")
}

func (s *Service) GetByCoding(ctx context.Context, coding string) (domain.Product, error) {
	return s.repo.FindByCoding(ctx, coding)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// Create cadastra um produto. Campos não informados recebem valores de
// exemplo para que o administrador edite em seguida.
func (s *Service) Create(ctx context.Context, input domain.Product) (domain.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Product{}, apperror.NewInternalError("falha ao gerar ID do produto", err)
	}

	now := s.now()
	stamp := now.UnixMilli()
	product := input
	product.ID = id.String()
	product.Name = orDefault(product.Name, fmt.Sprintf("sample name %d", stamp))
	product.Slug = orDefault(product.Slug, fmt.Sprintf("sample-name-%d", stamp))
	product.Category = orDefault(product.Category, "sample category")
	product.Brand = orDefault(product.Brand, "sample brand")
	product.Size = orDefault(product.Size, "sample size")
	product.Coding = orDefault(product.Coding, fmt.Sprintf("sample-coding-%d", stamp))
	product.Image = orDefault(product.Image, "/images/p1.jpg")
	product.Description = orDefault(product.Description, "sample description")
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := validation.Struct(product); err != nil {
		return domain.Product{}, err
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto criado.", map[string]interface{}{"product_id": created.ID})
	return created, nil
}

// Update substitui todos os campos editáveis do produto.
func (s *Service) Update(ctx context.Context, id string, input domain.Product) (domain.Product, error) {
	// 1. Validação
	if err := validation.Struct(input); err != nil {
		return domain.Product{}, err
	}

	// 2. Carrega o atual para preservar createdAt
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	product := input
	product.ID = current.ID
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = s.now()

	// 3. Persistência
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto atualizado.", map[string]interface{}{"product_id": id})
	return updated, nil
}

// Delete remove o produto pelo id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto removido.", map[string]interface{}{"product_id": id})
	return nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
