package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/database"
	"goloja/internal/pkg/logger"
)

const (
	userColumns = `id, name, email, password_hash, is_admin, created_at, updated_at`

	insertSQL = `INSERT INTO users (` + userColumns + `)
                 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	upsertSQL = `INSERT INTO users (` + userColumns + `)
                 VALUES ($1, $2, $3, $4, $5, $6, $7)
                 ON CONFLICT (email) DO UPDATE
                 SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash,
                     is_admin = EXCLUDED.is_admin, updated_at = EXCLUDED.updated_at`

	updateSQL = `UPDATE users
                 SET name = $2, email = $3, password_hash = $4, is_admin = $5, updated_at = $6
                 WHERE id = $1`

	selectByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	selectAllSQL     = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
)

// UserRepository persiste as contas no PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Save insere um novo usuário. Email repetido vira erro de validação.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, apperror.NewValidationError("Já existe uma conta com este email.")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Upsert grava o usuário pelo email, atualizando a conta se ela já existir.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, upsertSQL,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return apperror.NewDBError("falha ao gravar usuário", err)
	}
	return nil
}

// Update grava nome, email, hash e papel do usuário.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, updateSQL,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, apperror.NewValidationError("Já existe uma conta com este email.")
		}
		if database.IsInvalidText(err) {
			return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
		}
		return domain.User{}, apperror.NewDBError("falha ao atualizar usuário", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, selectByIDSQL, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, selectByEmailSQL, email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectAllSQL)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar usuários", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, apperror.NewDBError("falha ao ler usuário", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar usuários", err)
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var u domain.User
	err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, arg), &u)
	if errors.Is(err, sql.ErrNoRows) || database.IsInvalidText(err) {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("falha ao buscar usuário", err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner, u *domain.User) error {
	return s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
}
