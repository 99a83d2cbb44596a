package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nomes das coleções do Document Store.
const (
	ProductsCollection  = "products"
	OrdersCollection    = "orders"
	CustomersCollection = "customers"
)

// NewMongoClient conecta ao MongoDB e valida a conexão com um ping.
// O pool de conexões pertence ao driver.
func NewMongoClient(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("falha ao realizar o ping inicial no MongoDB: %w", err)
	}

	return client, nil
}

// IsDuplicateKey informa se o erro vem de um índice único do MongoDB.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
