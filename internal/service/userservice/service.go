package userservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"
	"goloja/internal/pkg/validation"
)

// UserRepository é o contrato da camada de persistência de contas.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(id token.Identity) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// HashPassword gera o hash bcrypt da senha.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	return string(hashed), nil
}

// Signup cria a conta e já devolve o token de acesso.
func (s *UserService) Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResult, error) {
	// 1. Validação
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return domain.AuthResult{}, err
	}

	// 2. Hashing da Senha
	hash, err := HashPassword(req.Password)
	if err != nil {
		return domain.AuthResult{}, err
	}

	// 3. Persistência (email repetido volta como ValidationError)
	now := s.now()
	user, err := s.UserRepo.Save(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.AuthResult{}, err
	}

	s.logger.Info("Conta criada.", map[string]interface{}{"user_id": user.ID})
	return s.authResult(user)
}

// Signin autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Signin(ctx context.Context, req domain.SigninRequest) (domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return domain.AuthResult{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// NotFound vira 401 para não revelar quais emails existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.AuthResult{}, apperror.NewUnauthorizedError("Email ou senha inválidos.")
		}
		return domain.AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResult{}, apperror.NewUnauthorizedError("Email ou senha inválidos.")
	}

	return s.authResult(user)
}

// UpdateProfile aplica a auto-atualização e emite um token novo com os dados atuais.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req domain.ProfileUpdate) (domain.AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return domain.AuthResult{}, err
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.AuthResult{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			return domain.AuthResult{}, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now()

	updated, err := s.UserRepo.Update(ctx, user)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return s.authResult(updated)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.UserRepo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}
	return s.UserRepo.FindByID(ctx, id)
}

// AdminUpdate altera nome, email e papel de uma conta.
func (s *UserService) AdminUpdate(ctx context.Context, id string, req domain.AdminUserUpdate) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return domain.User{}, err
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	user.IsAdmin = req.IsAdmin
	user.UpdatedAt = s.now()

	updated, err := s.UserRepo.Update(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("Conta atualizada por administrador.", map[string]interface{}{"user_id": id, "is_admin": updated.IsAdmin})
	return updated, nil
}

func (s *UserService) authResult(u domain.User) (domain.AuthResult, error) {
	tokenString, err := s.TokenSvc.GenerateToken(token.Identity{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	})
	if err != nil {
		return domain.AuthResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.AuthResult{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin, Token: tokenString}, nil
}

// checkID rejeita ids que não são UUID: nenhuma conta pode ter esse id.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewNotFoundError("Usuário não encontrado.")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
