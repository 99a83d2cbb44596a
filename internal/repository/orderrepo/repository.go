package orderrepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/database"
	"goloja/internal/pkg/logger"
)

// OrderRepository persiste pedidos na coleção "orders".
// Não há transações: a última escrita vence.
type OrderRepository struct {
	coll      *mongo.Collection
	dbTimeout time.Duration
	logger    logger.Logger
}

func NewOrderRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *OrderRepository {
	return &OrderRepository{
		coll:      db.Collection(database.OrdersCollection),
		dbTimeout: dbTimeout,
		logger:    log,
	}
}

// EnsureIndexes cria os índices usados por "meus pedidos" e pela série diária.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return apperror.NewDBError("falha ao criar índices de pedidos", err)
	}
	return nil
}

func (r *OrderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao inserir pedido", err)
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var order domain.Order
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, apperror.NewNotFoundError("Pedido não encontrado.")
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao buscar pedido", err)
	}
	return order, nil
}

// FindByUser devolve os pedidos do dono, mais recentes primeiro.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.find(ctx, bson.D{{Key: "user", Value: userID}})
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.D{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.D) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar pedidos", err)
	}
	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar pedidos", err)
	}
	return orders, nil
}

// MarkPaid aplica a transição de pagamento num único update atômico do documento.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string, result domain.PaymentResult, at time.Time) (domain.Order, error) {
	var o domain.Order
	o.MarkPaid(result, at)

	return r.setFields(ctx, id, bson.D{
		{Key: "isPaid", Value: o.IsPaid},
		{Key: "paidAt", Value: o.PaidAt},
		{Key: "paymentResult", Value: o.PaymentResult},
		{Key: "updatedAt", Value: o.UpdatedAt},
	})
}

// MarkDelivered aplica a transição de entrega. isPaid não é tocado.
func (r *OrderRepository) MarkDelivered(ctx context.Context, id string, at time.Time) (domain.Order, error) {
	var o domain.Order
	o.MarkDelivered(at)

	return r.setFields(ctx, id, bson.D{
		{Key: "isDelivered", Value: o.IsDelivered},
		{Key: "deliveredAt", Value: o.DeliveredAt},
		{Key: "updatedAt", Value: o.UpdatedAt},
	})
}

func (r *OrderRepository) setFields(ctx context.Context, id string, fields bson.D) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var updated domain.Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, apperror.NewNotFoundError("Pedido não encontrado.")
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao atualizar pedido", err)
	}
	return updated, nil
}

// Delete remove o pedido. Produtos não são afetados.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return apperror.NewDBError("falha ao remover pedido", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("Pedido não encontrado.")
	}
	return nil
}

// Totals conta os pedidos e soma totalPrice. Coleção vazia resulta em zeros.
func (r *OrderRepository) Totals(ctx context.Context) (domain.OrderTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "numOrders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	})
	if err != nil {
		return domain.OrderTotals{}, apperror.NewDBError("falha ao agregar pedidos", err)
	}

	var rows []domain.OrderTotals
	if err := cur.All(ctx, &rows); err != nil {
		return domain.OrderTotals{}, apperror.NewDBError("falha ao decodificar totais", err)
	}
	if len(rows) == 0 {
		return domain.OrderTotals{}, nil
	}
	return rows[0], nil
}

// DailySales agrupa os pedidos por dia (UTC) de criação, em ordem crescente.
func (r *OrderRepository) DailySales(ctx context.Context) ([]domain.DailySales, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "orderCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "salesSum", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, apperror.NewDBError("falha ao agregar vendas diárias", err)
	}

	daily := []domain.DailySales{}
	if err := cur.All(ctx, &daily); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar vendas diárias", err)
	}
	return daily, nil
}
