package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goloja/config"
	_ "goloja/docs" // registra a especificação swagger
	"goloja/internal/api/customer"
	"goloja/internal/api/order"
	"goloja/internal/api/product"
	"goloja/internal/api/response"
	"goloja/internal/api/user"
	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product  *product.Handler
	Order    *order.Handler
	Customer *customer.Handler
	User     *user.Handler
}

// PayPalKey é a resposta de /api/keys/paypal.
type PayPalKey struct {
	ClientID string `json:"clientId" example:"sb"`
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, cfg *config.Config, tokenSvc middleware.TokenValidator, cacheClient cache.Client, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.Authenticate(tokenSvc, log)
	admin := middleware.Chain(auth, middleware.RequireAdmin(log))

	// --- Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	mux.HandleFunc("GET /api/keys/paypal", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, log, http.StatusOK, PayPalKey{ClientID: cfg.PayPalClientID})
	})

	// --- Produtos ---
	mux.HandleFunc("GET /api/products", h.Product.ListHandler)
	mux.HandleFunc("GET /api/products/search", h.Product.SearchHandler)
	mux.HandleFunc("GET /api/products/admin", admin(h.Product.AdminListHandler))
	mux.HandleFunc("GET /api/products/categories", h.Product.CategoriesHandler)
	mux.HandleFunc("GET /api/products/codings", h.Product.CodingsHandler)
	mux.HandleFunc("GET /api/products/codings/{coding}", h.Product.GetByCodingHandler)
	mux.HandleFunc("GET /api/products/slug/{slug}", h.Product.GetBySlugHandler)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByIDHandler)
	mux.HandleFunc("POST /api/products", admin(h.Product.CreateHandler))
	mux.HandleFunc("PUT /api/products/{id}", admin(h.Product.UpdateHandler))
	mux.HandleFunc("DELETE /api/products/{id}", admin(h.Product.DeleteHandler))

	// --- Usuários ---
	mux.HandleFunc("POST /api/user/signup", h.User.SignupHandler)
	mux.HandleFunc("POST /api/user/signin", h.User.SigninHandler)
	mux.HandleFunc("PUT /api/user/profile", auth(h.User.ProfileHandler))
	mux.HandleFunc("GET /api/user", admin(h.User.ListHandler))
	mux.HandleFunc("GET /api/user/{id}", admin(h.User.GetHandler))
	mux.HandleFunc("PUT /api/user/{id}", admin(h.User.UpdateHandler))

	// --- Pedidos ---
	mux.HandleFunc("GET /api/orders", admin(h.Order.ListHandler))
	mux.HandleFunc("GET /api/orders/summary", admin(h.Order.SummaryHandler))
	mux.HandleFunc("GET /api/orders/mine", auth(h.Order.MineHandler))
	mux.HandleFunc("POST /api/orders", auth(h.Order.PlaceHandler))
	mux.HandleFunc("GET /api/orders/{id}", auth(h.Order.GetHandler))
	mux.HandleFunc("PUT /api/orders/{id}/pay", auth(h.Order.PayHandler))
	mux.HandleFunc("PUT /api/orders/{id}/deliver", auth(h.Order.DeliverHandler))
	mux.HandleFunc("DELETE /api/orders/{id}", admin(h.Order.DeleteHandler))

	// --- Clientes ---
	mux.HandleFunc("GET /api/customer", admin(h.Customer.ListHandler))
	mux.HandleFunc("POST /api/customer", admin(h.Customer.CreateHandler))
	mux.HandleFunc("GET /api/customer/{id}", h.Customer.GetHandler)
	mux.HandleFunc("PUT /api/customer/{id}", admin(h.Customer.UpdateHandler))
	mux.HandleFunc("DELETE /api/customer/{id}", admin(h.Customer.DeleteHandler))

	// --- Middlewares globais (de fora para dentro) ---
	var handler http.Handler = mux
	handler = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)(handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins)(handler)
	handler = middleware.RequestLogger(log)(handler)
	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
