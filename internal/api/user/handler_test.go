package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goloja/internal/api/user"
	"goloja/internal/domain"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/middleware"
	"goloja/internal/pkg/token"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockUserService) Signin(ctx context.Context, req domain.SigninRequest) (domain.AuthResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req domain.ProfileUpdate) (domain.AuthResult, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) AdminUpdate(ctx context.Context, id string, req domain.AdminUserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestSignupHandler_Created(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())

	req := domain.SignupRequest{Name: "Ana", Email: "ana@goloja.dev", Password: "123456"}
	svc.On("Signup", mock.Anything, req).Return(domain.AuthResult{ID: "u1", Name: "Ana", Email: "ana@goloja.dev", Token: "jwt"}, nil)

	rec := httptest.NewRecorder()
	h.SignupHandler(rec, httptest.NewRequest(http.MethodPost, "/api/user/signup",
		strings.NewReader(`{"name":"Ana","email":"ana@goloja.dev","password":"123456"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.AuthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "jwt", got.Token)
	assert.NotContains(t, rec.Body.String(), "123456")
}

func TestSigninHandler_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())

	svc.On("Signin", mock.Anything, mock.Anything).
		Return(domain.AuthResult{}, apperror.NewUnauthorizedError("Email ou senha inválidos."))

	rec := httptest.NewRecorder()
	h.SigninHandler(rec, httptest.NewRequest(http.MethodPost, "/api/user/signin",
		strings.NewReader(`{"email":"ana@goloja.dev","password":"errada"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileHandler_UsesCaller(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())

	svc.On("UpdateProfile", mock.Anything, "u1", domain.ProfileUpdate{Name: "Ana Maria"}).
		Return(domain.AuthResult{ID: "u1", Name: "Ana Maria", Token: "novo"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(`{"name":"Ana Maria"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), token.Identity{UserID: "u1"}))
	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateHandler_Admin(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())

	update := domain.AdminUserUpdate{Name: "Bia", Email: "bia@goloja.dev", IsAdmin: true}
	svc.On("AdminUpdate", mock.Anything, "u2", update).Return(domain.User{ID: "u2", Name: "Bia", IsAdmin: true}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/user/u2", strings.NewReader(`{"name":"Bia","email":"bia@goloja.dev","isAdmin":true}`))
	req.SetPathValue("id", "u2")
	rec := httptest.NewRecorder()
	h.UpdateHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got user.UpdatedUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Usuário atualizado", got.Message)
	assert.True(t, got.User.IsAdmin)
}
