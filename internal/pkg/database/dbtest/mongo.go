//go:build integration

// Package dbtest sobe um MongoDB descartável (testcontainers) para os testes de integração.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"goloja/internal/pkg/database"
)

// SetupMongo inicia um container mongo:7 e devolve um banco exclusivo do teste.
// O container é encerrado no t.Cleanup.
func SetupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForListeningPort("27017/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Falha ao iniciar container mongo: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Falha ao obter host do container: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("Falha ao obter porta do container: %v", err)
	}

	client, err := database.NewMongoClient(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), 10*time.Second)
	if err != nil {
		t.Fatalf("Falha ao conectar no mongo: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Falha ao desconectar do mongo: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Falha ao encerrar container: %v", err)
		}
	})

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return client.Database(name)
}
