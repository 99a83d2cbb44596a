package orderservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"
	"goloja/internal/pkg/validation"
)

// OrderRepository é o contrato de persistência dos pedidos.
type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id string, result domain.PaymentResult, at time.Time) (domain.Order, error)
	MarkDelivered(ctx context.Context, id string, at time.Time) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	Totals(ctx context.Context) (domain.OrderTotals, error)
	DailySales(ctx context.Context) ([]domain.DailySales, error)
}

// ProductCatalog resolve os produtos referenciados pelos itens do pedido.
type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
}

// CustomerCounter conta os clientes para o resumo.
type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service é o gerenciador do ciclo de vida dos pedidos.
type Service struct {
	orders    OrderRepository
	products  ProductCatalog
	customers CustomerCounter
	logger    logger.Logger
	now       func() time.Time
}

func NewService(orders OrderRepository, products ProductCatalog, customers CustomerCounter, log logger.Logger) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock troca o relógio usado nas transições.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Place cria um pedido em estado "created" para o chamador.
// Nome, slug, imagem e preço unitário vêm do catálogo, nunca do cliente.
func (s *Service) Place(ctx context.Context, userID string, req domain.PlaceOrderRequest) (domain.Order, error) {
	// 1. Validação do payload
	if len(req.OrderItems) == 0 {
		return domain.Order{}, apperror.NewValidationError("O pedido precisa de ao menos um item.")
	}
	if err := validation.Struct(req); err != nil {
		return domain.Order{}, err
	}

	// 2. Resolução dos produtos
	ids := make([]string, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		ids = append(ids, it.Product)
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}

	// 3. Itens e totais
	items := make([]domain.OrderItem, 0, len(req.OrderItems))
	itemsPrice := decimal.Zero
	for _, it := range req.OrderItems {
		p, ok := catalog[it.Product]
		if !ok {
			return domain.Order{}, apperror.NewValidationError(fmt.Sprintf("Produto %s não encontrado no catálogo.", it.Product))
		}
		items = append(items, domain.OrderItem{
			Product:  p.ID,
			Slug:     p.Slug,
			Name:     p.Name,
			Quantity: it.Quantity,
			Image:    p.Image,
			Price:    p.Price,
		})
		itemsPrice = itemsPrice.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	shipping := decimal.NewFromFloat(req.ShippingPrice)
	tax := decimal.NewFromFloat(req.TaxPrice)
	total := itemsPrice.Add(shipping).Add(tax)

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Order{}, apperror.NewInternalError("falha ao gerar ID do pedido", err)
	}
	now := s.now()
	order := domain.Order{
		ID:              id.String(),
		User:            userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      money(itemsPrice),
		ShippingPrice:   money(shipping),
		TaxPrice:        money(tax),
		TotalPrice:      money(total),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 4. Persistência
	created, err := s.orders.Insert(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Info("Pedido criado.", map[string]interface{}{
		"order_id": created.ID,
		"user_id":  userID,
		"total":    created.TotalPrice,
	})
	return created, nil
}

// MarkPaid registra o pagamento. Reaplicar sobrescreve resultado e data.
func (s *Service) MarkPaid(ctx context.Context, id string, result domain.PaymentResult) (domain.Order, error) {
	order, err := s.orders.MarkPaid(ctx, id, result, s.now())
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Info("Pedido pago.", map[string]interface{}{"order_id": id, "payment_id": result.ID})
	return order, nil
}

// MarkDelivered registra a entrega. Não exige pagamento prévio.
func (s *Service) MarkDelivered(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.orders.MarkDelivered(ctx, id, s.now())
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Info("Pedido entregue.", map[string]interface{}{"order_id": id, "paid": order.IsPaid})
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Pedido removido.", map[string]interface{}{"order_id": id})
	return nil
}

// GetByID devolve o pedido ao dono ou a um administrador.
func (s *Service) GetByID(ctx context.Context, id string, caller token.Identity) (domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !caller.IsAdmin && order.User != caller.UserID {
		return domain.Order{}, apperror.NewForbiddenError("O pedido pertence a outro usuário.")
	}
	return order, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

// Summarize monta o painel administrativo.
func (s *Service) Summarize(ctx context.Context) (domain.Summary, error) {
	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	daily, err := s.orders.DailySales(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	categories, err := s.products.CountByCategory(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	if daily == nil {
		daily = []domain.DailySales{}
	}
	if categories == nil {
		categories = []domain.CategoryCount{}
	}
	return domain.Summary{
		NumOrders:         totals.NumOrders,
		TotalSales:        totals.TotalSales,
		NumCustomers:      customers,
		DailyOrders:       daily,
		ProductCategories: categories,
	}, nil
}

// money arredonda para centavos.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
