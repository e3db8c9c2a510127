// Command seed migrates the database and fills it with the initial catalog and accounts.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"barwy-shop/internal/config"
	"barwy-shop/internal/database"
	"barwy-shop/internal/logger"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/seed"
	"barwy-shop/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	db := dbService.DB()
	if err := database.RunMigrations(db, cfg.Database.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)

	seeder := seed.New(
		service.NewIdentityService(users, roles, log),
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		database.NewTxManager(db),
		log,
	)

	if err := seeder.Run(ctx); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete")
}
