package middleware

import (
	"context"
	"net/http"
	"strings"

	"goloja/internal/api/response"
	apperror "goloja/internal/errors"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	identityKey ContextKey = iota
)

// Guard é um passo de autorização aplicado antes do handler.
type Guard func(next http.HandlerFunc) http.HandlerFunc

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Chain aplica os guards na ordem em que foram informados:
// Chain(a, b)(h) executa a, depois b, depois h.
func Chain(guards ...Guard) Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(guards) - 1; i >= 0; i-- {
			next = guards[i](next)
		}
		return next
	}
}

// Authenticate valida o token Bearer e anexa a identidade ao contexto.
func Authenticate(tokenSvc TokenValidator, log logger.Logger) Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Sem Token."))
				return
			}
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"error": err.Error()})
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			ctx := WithIdentity(r.Context(), claims.Identity())
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin exige uma identidade com a flag isAdmin. Deve vir após Authenticate.
func RequireAdmin(log logger.Logger) Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}
			if !id.IsAdmin {
				response.Error(w, r, log, apperror.NewForbiddenError("Token de administrador necessário."))
				return
			}
			next(w, r)
		}
	}
}

// WithIdentity anexa a identidade ao contexto.
func WithIdentity(ctx context.Context, id token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extrai a identidade anexada por Authenticate.
func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityKey).(token.Identity)
	return id, ok
}
