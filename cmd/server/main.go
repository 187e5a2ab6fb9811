package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"farm-bridge.backend/internal/config"
	"farm-bridge.backend/internal/infrastructure/blockchain"
	"farm-bridge.backend/internal/infrastructure/jobs"
	"farm-bridge.backend/internal/infrastructure/repositories"
	"farm-bridge.backend/internal/interfaces/http/handlers"
	"farm-bridge.backend/internal/interfaces/http/middleware"
	"farm-bridge.backend/internal/usecases"
	"farm-bridge.backend/pkg/jwt"
	"farm-bridge.backend/pkg/logger"
	"farm-bridge.backend/pkg/metrics"
	"farm-bridge.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newDepositVerifier = func(cfg config.TreasuryConfig) (usecases.DepositVerifier, error) {
		return blockchain.NewEVMClient(cfg.RPCURL, cfg.Address, cfg.MinConfirmations)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "failed to initialize redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	farmerRepo := repositories.NewFarmerRepository(db)
	donorRepo := repositories.NewDonorRepository(db)
	requestRepo := repositories.NewAidRequestRepository(db)
	eventRepo := repositories.NewLedgerEventRepository(db)
	statsRepo := repositories.NewStatsRepository(db)
	balanceRepo := repositories.NewBalanceRepository(db)
	depositRepo := repositories.NewDepositRepository(db)
	uow := repositories.NewUnitOfWork(db)

	m := metrics.New()

	verifier, err := newDepositVerifier(cfg.Treasury)
	if err != nil {
		return fmt.Errorf("failed to initialize deposit verifier: %w", err)
	}

	// Usecases
	registryUsecase := usecases.NewRegistryUsecase(farmerRepo, donorRepo, eventRepo, statsRepo, uow, m, cfg.Owner.Address)
	aidRequestUsecase := usecases.NewAidRequestUsecase(requestRepo, farmerRepo, donorRepo, balanceRepo, eventRepo, statsRepo, uow, m)
	depositUsecase := usecases.NewDepositUsecase(donorRepo, balanceRepo, depositRepo, eventRepo, uow, verifier)
	statsUsecase := usecases.NewStatsUsecase(statsRepo, eventRepo)
	authUsecase := usecases.NewAuthUsecase(jwtService, cfg.Owner.Address, cfg.Owner.KeyHash)

	// Event dispatcher
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	dispatcher := jobs.NewEventDispatchJob(eventRepo, jobs.LogSink{})
	go dispatcher.Start(dispatchCtx)
	defer dispatcher.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	registerAPIV1Routes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(authUsecase),
		registryHandler:   handlers.NewRegistryHandler(registryUsecase),
		adminHandler:      handlers.NewAdminHandler(registryUsecase),
		aidRequestHandler: handlers.NewAidRequestHandler(aidRequestUsecase),
		depositHandler:    handlers.NewDepositHandler(depositUsecase),
		statsHandler:      handlers.NewStatsHandler(statsUsecase),
		ownerAuth:         middleware.OwnerAuthMiddleware(jwtService),
		metricsHandler:    m.Handler(),
	})

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info(context.Background(), "shutting down")
		cancelDispatch()
		os.Exit(0)
	}()

	logger.Info(context.Background(), "server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
