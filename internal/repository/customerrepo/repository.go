package customerrepo

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

// uniqueFields são os campos com índice único na coleção de clientes.
var uniqueFields = []string{"email", "social", "address", "phone", "cpf"}

type CustomerRepository struct {
	coll      *mongo.Collection
	dbTimeout time.Duration
	logger    logger.Logger
}

func NewCustomerRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *CustomerRepository {
	return &CustomerRepository{
		coll:      db.Collection(database.CustomersCollection),
		dbTimeout: dbTimeout,
		logger:    log,
	}
}

// EnsureIndexes cria um índice único para cada campo de uniqueFields.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	models := make([]mongo.IndexModel, 0, len(uniqueFields))
	for _, f := range uniqueFields {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return apperror.NewDBError("falha ao criar índices de clientes", err)
	}
	return nil
}

func (r *CustomerRepository) Insert(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return domain.Customer{}, translateWriteError("falha ao inserir cliente", err)
	}
	return c, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar clientes", err)
	}
	customers := []domain.Customer{}
	if err := cur.All(ctx, &customers); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar clientes", err)
	}
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var c domain.Customer
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Customer{}, apperror.NewNotFoundError("Cliente não encontrado.")
	}
	if err != nil {
		return domain.Customer{}, apperror.NewDBError("falha ao buscar cliente", err)
	}
	return c, nil
}

// Update substitui o documento, preservando _id e createdAt do chamador.
func (r *CustomerRepository) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: c.ID}}, c)
	if err != nil {
		return domain.Customer{}, translateWriteError("falha ao atualizar cliente", err)
	}
	if res.MatchedCount == 0 {
		return domain.Customer{}, apperror.NewNotFoundError("Cliente não encontrado.")
	}
	return c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return apperror.NewDBError("falha ao remover cliente", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("Cliente não encontrado.")
	}
	return nil
}

// Count devolve o total de clientes cadastrados.
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, apperror.NewDBError("falha ao contar clientes", err)
	}
	return n, nil
}

func translateWriteError(msg string, err error) error {
	if database.IsDuplicateKey(err) {
		return apperror.NewValidationError("Já existe um cliente com o mesmo email, rede social, endereço, telefone ou CPF.")
	}
	return apperror.NewDBError(msg, err)
}
