//go:build integration

package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"goloja/internal/pkg/database"
)

// SetupPostgres inicia um postgres:16-alpine e aplica as migrações goose de migrationsDir.
func SetupPostgres(t *testing.T, migrationsDir string) *sql.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Falha ao iniciar container postgres: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Falha ao obter host do container: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Falha ao obter porta do container: %v", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		t.Fatalf("Falha ao conectar no postgres: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Falha ao fechar o DB: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Falha ao encerrar container: %v", err)
		}
	})

	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("goose: %v", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		t.Fatalf("Falha ao aplicar migrações: %v", err)
	}
	return db
}
