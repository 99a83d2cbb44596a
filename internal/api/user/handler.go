package user

import (
	"context"
	"net/http"

	"goloja/internal/api/response"
	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/middleware"
)

// UserService define o contrato para as operações de conta.
type UserService interface {
	Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResult, error)
	Signin(ctx context.Context, req domain.SigninRequest) (domain.AuthResult, error)
	UpdateProfile(ctx context.Context, userID string, req domain.ProfileUpdate) (domain.AuthResult, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	AdminUpdate(ctx context.Context, id string, req domain.AdminUserUpdate) (domain.User, error)
}

// UpdatedUser é a resposta da atualização administrativa.
type UpdatedUser struct {
	Message string      `json:"message" example:"Usuário atualizado"`
	User    domain.User `json:"user"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SignupHandler lida com a requisição POST /api/user/signup.
// @Summary Registra um novo usuário
// @Description Cria a conta, hasheia a senha e devolve o token de acesso.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.SignupRequest true "Nome, email e senha"
// @Success 201 {object} domain.AuthResult "Conta criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /user/signup [post]
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	res, err := h.Service.Signup(r.Context(), req)
	response.Handle(w, r, h.Logger, res, err, http.StatusCreated)
}

// SigninHandler lida com a requisição POST /api/user/signin.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.SigninRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.AuthResult "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /user/signin [post]
func (h *Handler) SigninHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SigninRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	res, err := h.Service.Signin(r.Context(), req)
	response.Handle(w, r, h.Logger, res, err, http.StatusOK)
}

// ProfileHandler lida com PUT /api/user/profile.
// @Summary Atualiza o próprio perfil
// @Description Campos vazios mantêm o valor atual. Um novo token é emitido.
// @Tags users
// @Accept json
// @Produce json
// @Param profile body domain.ProfileUpdate true "Nome, email e/ou senha"
// @Success 200 {object} domain.AuthResult
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Token ausente."))
		return
	}

	var req domain.ProfileUpdate
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	res, err := h.Service.UpdateProfile(r.Context(), caller.UserID, req)
	response.Handle(w, r, h.Logger, res, err, http.StatusOK)
}

// ListHandler lida com GET /api/user.
// @Summary Lista as contas (admin)
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Security ApiKeyAuth
// @Router /user [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	response.Handle(w, r, h.Logger, users, err, http.StatusOK)
}

// GetHandler lida com GET /api/user/{id}.
// @Summary Busca uma conta (admin)
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /user/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Get(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, u, err, http.StatusOK)
}

// UpdateHandler lida com PUT /api/user/{id}.
// @Summary Atualiza uma conta (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID do usuário"
// @Param user body domain.AdminUserUpdate true "Nome, email e papel"
// @Success 200 {object} UpdatedUser
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /user/{id} [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminUserUpdate
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	u, err := h.Service.AdminUpdate(r.Context(), r.PathValue("id"), req)
	response.Handle(w, r, h.Logger, UpdatedUser{Message: "Usuário atualizado", User: u}, err, http.StatusOK)
}
