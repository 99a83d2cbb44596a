package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goloja/config"
	"goloja/internal/api/customer"
	"goloja/internal/api/order"
	"goloja/internal/api/product"
	"goloja/internal/api/router"
	"goloja/internal/api/user"
	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"
)

// counterCache conta as chamadas de Incr como o Redis faria.
type counterCache struct {
	counts map[string]int64
}

func (c *counterCache) Get(ctx context.Context, key string) (string, error) {
	return "", cache.ErrCacheMiss
}

func (c *counterCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *counterCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *counterCache) Incr(ctx context.Context, key string) (int64, error) {
	c.counts[key]++
	return c.counts[key], nil
}

func (c *counterCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func newRouter(t *testing.T, limit int) (http.Handler, *token.Service) {
	t.Helper()
	log := logger.NewNop()
	cfg := &config.Config{
		RateLimitMaxRequests: limit,
		RateLimitPeriod:      time.Minute,
		CORSAllowedOrigins:   []string{"http://localhost:3000"},
		PayPalClientID:       "sb",
	}
	tokenSvc := token.NewService("segredo", time.Hour)

	// Os guards rejeitam antes de chegar aos serviços.
	handlers := router.Handlers{
		Product:  product.NewHandler(nil, log),
		Order:    order.NewHandler(nil, log),
		Customer: customer.NewHandler(nil, log),
		User:     user.NewHandler(nil, log),
	}
	return router.NewRouter(handlers, cfg, tokenSvc, &counterCache{counts: map[string]int64{}}, log), tokenSvc
}

func TestPing(t *testing.T) {
	r, _ := newRouter(t, 100)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestPayPalKey(t *testing.T) {
	r, _ := newRouter(t, 100)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/keys/paypal", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var key router.PayPalKey
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &key))
	assert.Equal(t, "sb", key.ClientID)
}

func TestGuardedRoutes(t *testing.T) {
	r, tokenSvc := newRouter(t, 100)
	userTok, err := tokenSvc.GenerateToken(token.Identity{UserID: "u-1", Email: "user@goloja.dev"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		bearer string
		status int
	}{
		{"pedidos do usuário sem token", http.MethodGet, "/api/orders/mine", "", http.StatusUnauthorized},
		{"criar pedido sem token", http.MethodPost, "/api/orders", "", http.StatusUnauthorized},
		{"perfil sem token", http.MethodPut, "/api/user/profile", "", http.StatusUnauthorized},
		{"resumo sem token", http.MethodGet, "/api/orders/summary", "", http.StatusUnauthorized},
		{"resumo por usuário comum", http.MethodGet, "/api/orders/summary", userTok, http.StatusForbidden},
		{"remover pedido por usuário comum", http.MethodDelete, "/api/orders/o1", userTok, http.StatusForbidden},
		{"criar produto por usuário comum", http.MethodPost, "/api/products", userTok, http.StatusForbidden},
		{"listar usuários por usuário comum", http.MethodGet, "/api/user", userTok, http.StatusForbidden},
		{"listar clientes sem token", http.MethodGet, "/api/customer", "", http.StatusUnauthorized},
		{"token inválido", http.MethodGet, "/api/orders/mine", "nao-e-um-jwt", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	r, _ := newRouter(t, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/ping", nil))
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newRouter(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newRouter(t, 100)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nada", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
