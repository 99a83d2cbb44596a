package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"goloja/config"
	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/database"
	"goloja/internal/pkg/logger"
	"goloja/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"goloja/internal/api/customer"
	"goloja/internal/api/order"
	"goloja/internal/api/product"
	"goloja/internal/api/router"
	"goloja/internal/api/user"
	"goloja/internal/repository/customerrepo"
	"goloja/internal/repository/orderrepo"
	"goloja/internal/repository/productrepo"
	"goloja/internal/repository/userrepo"
	"goloja/internal/service/customerservice"
	"goloja/internal/service/orderservice"
	"goloja/internal/service/productservice"
	"goloja/internal/service/userservice"
)

// @title GoLoja API
// @version 1.0
// @description API de e-commerce: catálogo, clientes, contas e pedidos.
// @host localhost:3333
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoLoja...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelBoot()

	// A. Document Store (MongoDB)
	mongoClient, err := database.NewMongoClient(bootCtx, cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		log.Fatal("Falha ao conectar ao MongoDB.", err)
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database(cfg.MongoDatabase)
	log.Info("Conexão MongoDB estabelecida.", map[string]interface{}{"database": cfg.MongoDatabase})

	// B. Contas (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// C. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr, log)
	defer cacheClient.Close()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(mongoDB, cacheClient, cfg.CacheTTL, cfg.DBTimeout, log)
	orderRepo := orderrepo.NewOrderRepository(mongoDB, cfg.DBTimeout, log)
	customerRepo := customerrepo.NewCustomerRepository(mongoDB, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)

	if err := productRepo.EnsureIndexes(bootCtx); err != nil {
		log.Fatal("Falha ao preparar a coleção de produtos.", err)
	}
	if err := orderRepo.EnsureIndexes(bootCtx); err != nil {
		log.Fatal("Falha ao preparar a coleção de pedidos.", err)
	}
	if err := customerRepo.EnsureIndexes(bootCtx); err != nil {
		log.Fatal("Falha ao preparar a coleção de clientes.", err)
	}
	log.Debug("Repositórios inicializados.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	productSvc := productservice.NewService(productRepo, log)
	orderSvc := orderservice.NewService(orderRepo, productRepo, customerRepo, log)
	customerSvc := customerservice.NewService(customerRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	handlers := router.Handlers{
		Product:  product.NewHandler(productSvc, log),
		Order:    order.NewHandler(orderSvc, log),
		Customer: customer.NewHandler(customerSvc, log),
		User:     user.NewHandler(userSvc, log),
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, cfg, tokenSvc, cacheClient, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoLoja ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
