package product

import (
	"context"
	"net/http"

	"goloja/internal/api/response"
	"goloja/internal/domain"
	"goloja/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	Search(ctx context.Context, params domain.ProductSearchParams) (domain.ProductPage, error)
	AdminPage(ctx context.Context, page, pageSize string) (domain.ProductPage, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Codings(ctx context.Context) ([]string, error)
	GetByCoding(ctx context.Context, coding string) (domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListHandler lida com GET /api/products.
// @Summary Lista todos os produtos
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListAll(r.Context())
	response.Handle(w, r, h.Logger, products, err, http.StatusOK)
}

// SearchHandler lida com GET /api/products/search.
// @Summary Busca no catálogo
// @Description Filtro por texto, categoria, código, faixa de preço e nota, com ordenação e paginação.
// @Tags products
// @Produce json
// @Param query query string false "Texto contido no nome (ou all)"
// @Param category query string false "Categoria (ou all)"
// @Param coding query string false "Código (ou all)"
// @Param price query string false "Faixa min-max (ou all)"
// @Param rating query string false "Nota mínima (ou all)"
// @Param order query string false "featured, lowest, highest, toprated ou newest"
// @Param page query int false "Página (padrão 1)"
// @Param pageSize query int false "Itens por página (padrão 30, máximo 100)"
// @Success 200 {object} domain.ProductPage
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/search [get]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coding := q.Get("coding")
	if coding == "" {
		coding = q.Get("codings")
	}

	page, err := h.Service.Search(r.Context(), domain.ProductSearchParams{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		Coding:   coding,
		Price:    q.Get("price"),
		Rating:   q.Get("rating"),
		Order:    q.Get("order"),
		Page:     q.Get("page"),
		PageSize: q.Get("pageSize"),
	})
	response.Handle(w, r, h.Logger, page, err, http.StatusOK)
}

// AdminListHandler lida com GET /api/products/admin.
// @Summary Listagem paginada do catálogo (admin)
// @Tags products
// @Produce json
// @Param page query int false "Página (padrão 1)"
// @Param pageSize query int false "Itens por página"
// @Success 200 {object} domain.ProductPage
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Security ApiKeyAuth
// @Router /products/admin [get]
func (h *Handler) AdminListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Service.AdminPage(r.Context(), q.Get("page"), q.Get("pageSize"))
	response.Handle(w, r, h.Logger, page, err, http.StatusOK)
}

// CategoriesHandler lida com GET /api/products/categories.
// @Summary Categorias distintas
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /products/categories [get]
func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Service.Categories(r.Context())
	response.Handle(w, r, h.Logger, cats, err, http.StatusOK)
}

// CodingsHandler lida com GET /api/products/codings.
// @Summary Códigos distintos
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /products/codings [get]
func (h *Handler) CodingsHandler(w http.ResponseWriter, r *http.Request) {
	codes, err := h.Service.Codings(r.Context())
	response.Handle(w, r, h.Logger, codes, err, http.StatusOK)
}

// GetByCodingHandler lida com GET /api/products/codings/{coding}.
// @Summary Busca produto pelo código
// @Tags products
// @Produce json
// @Param coding path string true "Código do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/codings/{coding} [get]
func (h *Handler) GetByCodingHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetByCoding(r.Context(), r.PathValue("coding"))
	response.Handle(w, r, h.Logger, p, err, http.StatusOK)
}

// GetBySlugHandler lida com GET /api/products/slug/{slug}.
// @Summary Busca produto pelo slug
// @Tags products
// @Produce json
// @Param slug path string true "Slug do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/slug/{slug} [get]
func (h *Handler) GetBySlugHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetBySlug(r.Context(), r.PathValue("slug"))
	response.Handle(w, r, h.Logger, p, err, http.StatusOK)
}

// GetByIDHandler lida com GET /api/products/{id}.
// @Summary Busca produto pelo ID
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [get]
func (h *Handler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetByID(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, p, err, http.StatusOK)
}

// CreateHandler lida com POST /api/products.
// Corpo vazio é aceito: o produto nasce com valores de exemplo.
// @Summary Cria um produto (admin)
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.Product false "Dados do produto"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou duplicado"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Product
	if err := response.DecodeOptionalJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateHandler lida com PUT /api/products/{id}.
// @Summary Atualiza todos os campos do produto (admin)
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body domain.Product true "Dados do produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou duplicado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Product
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), r.PathValue("id"), input)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteHandler lida com DELETE /api/products/{id}.
// @Summary Remove um produto (admin)
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} response.Message
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, response.Message{Message: "Produto removido"}, err, http.StatusOK)
}
