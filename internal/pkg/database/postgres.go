package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// NewPostgresDB abre e configura o pool de conexões do PostgreSQL (contas de usuário).
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// O volume de contas é pequeno; o pool pode ser modesto.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

const (
	// pgUniqueViolation é o SQLSTATE de violação de UNIQUE.
	pgUniqueViolation = "23505"
	// pgInvalidText é o SQLSTATE de texto que não converte para o tipo da coluna (ex.: UUID).
	pgInvalidText = "22P02"
)

// IsUniqueViolation informa se o erro do driver pq é uma violação de unicidade.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

// IsInvalidText informa se um parâmetro não pôde ser convertido para o tipo da coluna.
func IsInvalidText(err error) bool {
	return hasCode(err, pgInvalidText)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}
