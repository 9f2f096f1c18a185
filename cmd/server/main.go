package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/questgo/backend/api/handler"
	"github.com/questgo/backend/internal/catalog"
	"github.com/questgo/backend/internal/config"
	"github.com/questgo/backend/internal/infrastructure/evidence"
	"github.com/questgo/backend/internal/infrastructure/monitor"
	pgInfra "github.com/questgo/backend/internal/infrastructure/postgres"
	redisInfra "github.com/questgo/backend/internal/infrastructure/redis"
	"github.com/questgo/backend/internal/middleware"
	"github.com/questgo/backend/internal/router"
	"github.com/questgo/backend/internal/services"
	"github.com/questgo/backend/internal/services/lifecycle"
	"github.com/questgo/backend/internal/tracker"
	"github.com/questgo/backend/pkg/httpcontext"
	"github.com/questgo/backend/pkg/logger"
	"github.com/questgo/backend/repository/postgres"
	redisRepo "github.com/questgo/backend/repository/redis"
	questUC "github.com/questgo/backend/usecase/quest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// The catalog is a hard startup dependency: no catalog, no quest.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		zapLogger.Fatal("catalog load failed", zap.Error(err))
	}
	zapLogger.Info("catalog loaded",
		zap.String("path", cfg.Catalog.Path), zap.Int("tasks", cat.Len()))

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.RegisterCloser("redis", redisClient)

	vault, err := evidence.Open(cfg.Evidence.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open evidence vault", zap.Error(err))
	}
	manager.RegisterCloser("evidence_vault", vault)

	mon := monitor.New(pool, redisClient, vault, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	sweeper := services.NewEvidenceSweeper(vault, zapLogger, services.SweeperConfig{
		Interval:  cfg.Evidence.SweepInterval,
		Retention: time.Duration(cfg.Evidence.RetentionDays) * 24 * time.Hour,
	})
	sweeper.Start()
	manager.Register("evidence_sweeper", func(ctx context.Context) error {
		sweeper.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	completionRepo := postgres.NewCompletionRepository(pool)
	progressCache := redisRepo.NewProgressCache(redisClient, cfg.Gateway.ProgressTTL)
	vaultBridge := services.NewEvidenceBridge(vault)

	questUseCase := questUC.New(
		userRepo,
		completionRepo,
		progressCache,
		vaultBridge,
		tracker.New(),
		cat,
		zapLogger,
	)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Quest:  apiHandler.NewQuestHandler(questUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	gatewayAuth := middleware.GatewayAuth(cfg.Gateway.Secret, zapLogger)
	r := router.New(handlers, gatewayAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
