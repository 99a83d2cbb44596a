package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"goloja/config"
	"goloja/internal/pkg/cache"
	"goloja/internal/pkg/database"
	"goloja/internal/pkg/logger"
	"goloja/internal/repository/productrepo"
	"goloja/internal/repository/userrepo"
	"goloja/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao MongoDB.", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	cacheClient := cache.NewRedisClient(cfg.RedisAddr, appLog)
	defer cacheClient.Close()

	productRepo := productrepo.NewProductRepository(mongoClient.Database(cfg.MongoDatabase), cacheClient, cfg.CacheTTL, cfg.DBTimeout, appLog)
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		appLog.Fatal("Falha ao preparar a coleção de produtos.", err)
	}
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)

	res, err := seed.NewLoader(productRepo, userRepo, appLog).Load(ctx)
	if err != nil {
		appLog.Fatal("Seed falhou.", err)
	}
	log.Printf("seed ok: %d usuários, %d produtos\n", res.Users, res.Products)
}
