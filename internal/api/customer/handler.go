package customer

import (
	"context"
	"net/http"

	"goloja/internal/api/response"
	"goloja/internal/domain"
	"goloja/internal/pkg/logger"
)

type CustomerService interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	Update(ctx context.Context, id string, c domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Service CustomerService
	Logger  logger.Logger
}

func NewHandler(svc CustomerService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateHandler lida com POST /api/customer.
// @Summary Cadastra um cliente (admin)
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body domain.Customer true "Dados do cliente"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campo único repetido"
// @Security ApiKeyAuth
// @Router /customer [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Customer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	c, err := h.Service.Create(r.Context(), input)
	response.Handle(w, r, h.Logger, c, err, http.StatusCreated)
}

// ListHandler lida com GET /api/customer.
// @Summary Lista os clientes (admin)
// @Tags customers
// @Produce json
// @Success 200 {array} domain.Customer
// @Security ApiKeyAuth
// @Router /customer [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	response.Handle(w, r, h.Logger, list, err, http.StatusOK)
}

// GetHandler lida com GET /api/customer/{id}. Rota pública.
// @Summary Busca um cliente
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Router /customer/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByID(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, c, err, http.StatusOK)
}

// UpdateHandler lida com PUT /api/customer/{id}.
// @Summary Atualiza um cliente (admin)
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param customer body domain.Customer true "Dados do cliente"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Security ApiKeyAuth
// @Router /customer/{id} [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.Customer
	if err := response.DecodeJSON(r, &input); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	c, err := h.Service.Update(r.Context(), r.PathValue("id"), input)
	response.Handle(w, r, h.Logger, c, err, http.StatusOK)
}

// DeleteHandler lida com DELETE /api/customer/{id}.
// @Summary Remove um cliente (admin)
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} response.Message
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Security ApiKeyAuth
// @Router /customer/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, response.Message{Message: "Cliente removido"}, err, http.StatusOK)
}
