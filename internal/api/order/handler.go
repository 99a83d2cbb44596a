package order

import (
	"context"
	"net/http"

	"goloja/internal/api/response"
	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/middleware"
	"goloja/internal/pkg/token"
)

// OrderService define o contrato que o Handler espera da camada de Serviço.
type OrderService interface {
	Place(ctx context.Context, userID string, req domain.PlaceOrderRequest) (domain.Order, error)
	MarkPaid(ctx context.Context, id string, result domain.PaymentResult) (domain.Order, error)
	MarkDelivered(ctx context.Context, id string) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string, caller token.Identity) (domain.Order, error)
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Summarize(ctx context.Context) (domain.Summary, error)
}

// PlacedOrder é a resposta da criação de pedido.
type PlacedOrder struct {
	Message string       `json:"message" example:"Novo pedido criado"`
	Order   domain.Order `json:"order"`
}

// OrderUpdated é a resposta das transições de pagamento e entrega.
type OrderUpdated struct {
	Message string       `json:"message" example:"Pedido pago"`
	Order   domain.Order `json:"order"`
}

type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// identity lê a identidade anexada pelo guard Authenticate.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (token.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Token ausente."))
	}
	return id, ok
}

// PlaceHandler lida com POST /api/orders.
// @Summary Cria um pedido
// @Description Preço, nome, slug e imagem de cada item vêm do catálogo.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body domain.PlaceOrderRequest true "Itens e dados de entrega"
// @Success 201 {object} PlacedOrder
// @Failure 400 {object} domain.ErrorResponse "Carrinho vazio ou payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /orders [post]
func (h *Handler) PlaceHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req domain.PlaceOrderRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.Place(r.Context(), caller.UserID, req)
	response.Handle(w, r, h.Logger, PlacedOrder{Message: "Novo pedido criado", Order: created}, err, http.StatusCreated)
}

// MineHandler lida com GET /api/orders/mine.
// @Summary Pedidos do usuário autenticado
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /orders/mine [get]
func (h *Handler) MineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}
	orders, err := h.Service.ListMine(r.Context(), caller.UserID)
	response.Handle(w, r, h.Logger, orders, err, http.StatusOK)
}

// ListHandler lida com GET /api/orders.
// @Summary Todos os pedidos (admin)
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Security ApiKeyAuth
// @Router /orders [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListAll(r.Context())
	response.Handle(w, r, h.Logger, orders, err, http.StatusOK)
}

// SummaryHandler lida com GET /api/orders/summary.
// @Summary Resumo de vendas (admin)
// @Tags orders
// @Produce json
// @Success 200 {object} domain.Summary
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Security ApiKeyAuth
// @Router /orders/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summarize(r.Context())
	response.Handle(w, r, h.Logger, summary, err, http.StatusOK)
}

// GetHandler lida com GET /api/orders/{id}.
// @Summary Busca um pedido
// @Tags orders
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Order
// @Failure 403 {object} domain.ErrorResponse "Pedido de outro usuário"
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}
	o, err := h.Service.GetByID(r.Context(), r.PathValue("id"), caller)
	response.Handle(w, r, h.Logger, o, err, http.StatusOK)
}

// PayHandler lida com PUT /api/orders/{id}/pay.
// @Summary Marca o pedido como pago
// @Description O resultado do provedor de pagamento é gravado como recebido.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID do pedido"
// @Param payment body domain.PaymentResult true "Confirmação do provedor"
// @Success 200 {object} OrderUpdated
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id}/pay [put]
func (h *Handler) PayHandler(w http.ResponseWriter, r *http.Request) {
	var result domain.PaymentResult
	if err := response.DecodeJSON(r, &result); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	o, err := h.Service.MarkPaid(r.Context(), r.PathValue("id"), result)
	response.Handle(w, r, h.Logger, OrderUpdated{Message: "Pedido pago", Order: o}, err, http.StatusOK)
}

// DeliverHandler lida com PUT /api/orders/{id}/deliver.
// @Summary Marca o pedido como entregue
// @Tags orders
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} OrderUpdated
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id}/deliver [put]
func (h *Handler) DeliverHandler(w http.ResponseWriter, r *http.Request) {
	o, err := h.Service.MarkDelivered(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, OrderUpdated{Message: "Pedido entregue", Order: o}, err, http.StatusOK)
}

// DeleteHandler lida com DELETE /api/orders/{id}.
// @Summary Remove um pedido (admin)
// @Tags orders
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} response.Message
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, response.Message{Message: "Pedido removido"}, err, http.StatusOK)
}
