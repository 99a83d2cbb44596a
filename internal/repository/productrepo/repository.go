package productrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/database"
	"goloja/internal/pkg/logger"
)

// Chaves de cache dos produtos (cache-aside).
const (
	productIDCacheKey   = "product:id:%s"
	productSlugCacheKey = "product:slug:%s"
)

// ProductRepository persiste produtos na coleção "products" do MongoDB
// e mantém as leituras por id/slug no Redis.
type ProductRepository struct {
	coll      *mongo.Collection
	cache     cache.Client
	cacheTTL  time.Duration
	dbTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository injeta as dependências de infraestrutura.
func NewProductRepository(db *mongo.Database, cacheClient cache.Client, cacheTTL, dbTimeout time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		coll:      db.Collection(database.ProductsCollection),
		cache:     cacheClient,
		cacheTTL:  cacheTTL,
		dbTimeout: dbTimeout,
		logger:    log,
	}
}

// EnsureIndexes cria os índices únicos (name, slug, codings) e os de ordenação.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true)
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "codings", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
	})
	if err != nil {
		return apperror.NewDBError("falha ao criar índices de produtos", err)
	}
	return nil
}

// FindAll devolve o catálogo inteiro.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar produtos", err)
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar produtos", err)
	}
	return products, nil
}

// Search executa a consulta do catálogo e a contagem com o mesmo filtro.
func (r *ProductRepository) Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	filter := buildFilter(q)
	r.logger.Debug("Executando busca no catálogo.", map[string]interface{}{
		"filter": fmt.Sprint(filter),
		"page":   q.Page,
		"size":   q.PageSize,
	})

	cur, err := r.coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, 0, apperror.NewDBError("falha ao buscar produtos", err)
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, apperror.NewDBError("falha ao decodificar produtos", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewDBError("falha ao contar produtos", err)
	}
	return products, total, nil
}

// Distinct devolve os valores distintos de um campo (category, codings).
func (r *ProductRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, apperror.NewDBError(fmt.Sprintf("falha ao buscar valores distintos de %s", field), err)
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// CountByCategory agrupa os produtos por categoria.
func (r *ProductRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, apperror.NewDBError("falha ao agrupar produtos por categoria", err)
	}
	counts := []domain.CategoryCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar categorias", err)
	}
	return counts, nil
}

// FindByID busca um produto pelo id, com cache-aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	return r.findCached(ctx, fmt.Sprintf(productIDCacheKey, id), bson.D{{Key: "_id", Value: id}})
}

// FindBySlug busca um produto pelo slug, com cache-aside.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	return r.findCached(ctx, fmt.Sprintf(productSlugCacheKey, slug), bson.D{{Key: "slug", Value: slug}})
}

// FindByCoding busca um produto pelo código.
func (r *ProductRepository) FindByCoding(ctx context.Context, coding string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()
	return r.findOne(ctx, bson.D{{Key: "codings", Value: coding}})
}

// FindByIDs devolve os produtos encontrados indexados pelo id.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, apperror.NewDBError("falha ao buscar produtos do pedido", err)
	}
	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperror.NewDBError("falha ao decodificar produtos do pedido", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// Save insere um novo produto.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return domain.Product{}, translateWriteError("falha ao inserir produto", err)
	}
	r.logger.Info("Produto salvo.", map[string]interface{}{"product_id": product.ID, "slug": product.Slug})
	return product, nil
}

// Update substitui todos os campos do produto e invalida o cache.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var previous domain.Product
	err := r.coll.FindOneAndReplace(ctx,
		bson.D{{Key: "_id", Value: product.ID}},
		product,
		options.FindOneAndReplace().SetReturnDocument(options.Before),
	).Decode(&previous)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, apperror.NewNotFoundError("Produto não encontrado.")
	}
	if err != nil {
		return domain.Product{}, translateWriteError("falha ao atualizar produto", err)
	}

	r.invalidate(ctx, product.ID, previous.Slug, product.Slug)
	return product, nil
}

// Delete remove o produto e invalida o cache.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var removed domain.Product
	err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NewNotFoundError("Produto não encontrado.")
	}
	if err != nil {
		return apperror.NewDBError("falha ao remover produto", err)
	}

	r.invalidate(ctx, id, removed.Slug)
	return nil
}

// ReplaceAll apaga o catálogo, invalida o cache e insere o conjunto informado (carga de fixtures).
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var previous []domain.Product
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "slug", Value: 1}}))
	if err != nil {
		return apperror.NewDBError("falha ao listar produtos", err)
	}
	if err := cur.All(ctx, &previous); err != nil {
		return apperror.NewDBError("falha ao decodificar produtos", err)
	}

	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return apperror.NewDBError("falha ao limpar produtos", err)
	}
	for _, p := range previous {
		r.invalidate(ctx, p.ID, p.Slug)
	}
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return translateWriteError("falha ao inserir produtos", err)
	}
	return nil
}

func (r *ProductRepository) findCached(ctx context.Context, key string, filter bson.D) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dbTimeout)
	defer cancel()

	var product domain.Product
	cached, err := r.cache.Get(ctx, key)
	if err == nil {
		if json.Unmarshal([]byte(cached), &product) == nil {
			return product, nil
		}
		r.logger.Warn("Entrada de cache corrompida; consultando o banco.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	product, err = r.findOne(ctx, filter)
	if err != nil {
		return domain.Product{}, err
	}

	if data, marshalErr := json.Marshal(product); marshalErr == nil {
		if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar no cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return product, nil
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.D) (domain.Product, error) {
	var product domain.Product
	err := r.coll.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, apperror.NewNotFoundError("Produto não encontrado.")
	}
	if err != nil {
		return domain.Product{}, apperror.NewDBError("falha ao buscar produto", err)
	}
	return product, nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id string, slugs ...string) {
	keys := []string{fmt.Sprintf(productIDCacheKey, id)}
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, fmt.Sprintf(productSlugCacheKey, s))
		}
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"product_id": id, "error": err.Error()})
	}
}

// translateWriteError converte violação de índice único em erro de validação.
func translateWriteError(msg string, err error) error {
	if database.IsDuplicateKey(err) {
		return apperror.NewValidationError("Já existe um produto com o mesmo nome, slug ou código.")
	}
	return apperror.NewDBError(msg, err)
}
