package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/identity/jwtauth"
	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/renderer/excel"
	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/storage/gcs"
	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/storage/inmem"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/handlers"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
	"github.com/chonlathan-cloud/ProjectPRT/internal/platform/config"
	"github.com/chonlathan-cloud/ProjectPRT/internal/repositories/database/pgsql"
	"github.com/chonlathan-cloud/ProjectPRT/internal/repositories/memory"
	"github.com/chonlathan-cloud/ProjectPRT/internal/worker"
	"github.com/chonlathan-cloud/ProjectPRT/pkg/cache"
	"github.com/chonlathan-cloud/ProjectPRT/pkg/database"
)

// @title PRT Case Workflow API
// @version 1.0
// @description Accounting case and voucher workflow.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uow, closeStore, err := openUnitOfWork(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	objects, closeObjects, err := openObjectStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeObjects()

	renderWorker := worker.NewRenderWorker(excel.NewRenderer(logger), objects, cfg.RenderWorkers, logger)
	workers := worker.NewManager(logger)
	workers.Register(renderWorker)
	if err := workers.StartAll(ctx); err != nil {
		return err
	}
	defer workers.StopAll()
	logger.Info("Background workers running", slog.Int("count", workers.Count()))

	container := services.NewServiceContainer(cfg, uow, objects, renderWorker)

	deps := handlers.RouterDeps{Identity: jwtauth.NewProvider(cfg.JWTSecret, cfg.JWTIssuer)}
	if cfg.RateLimit != "" {
		deps.Limiter, err = middleware.NewMemoryLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
	}
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		deps.Redis = rdb
		logger.Info("Idempotency keys enabled", slog.String("redis_addr", cfg.RedisAddr))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.IdempotentReplayHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, container, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openUnitOfWork connects the configured storage driver. The returned
// func releases it.
func openUnitOfWork(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.UnitOfWork, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using the in-memory storage driver; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	if err := runMigrations(cfg, logger); err != nil {
		return nil, nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		ConnectTimeout: 10 * time.Second,
		LockTimeout:    cfg.LockTimeout,
		Ping:           cfg.EnableDBCheck,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return pgsql.NewUnitOfWork(pool, cfg.LockTimeout), func() { database.ClosePgxPool(pool, logger) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func openObjectStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.ObjectStore, func(), error) {
	if cfg.GCSBucketName == "" {
		return inmem.New("prt", "http://localhost:"+cfg.Port+"/objects"), func() {}, nil
	}
	store, err := gcs.New(ctx, cfg.GCSBucketName, cfg.GCSBasePath, cfg.GoogleCredentials)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using GCS object store", slog.String("bucket", cfg.GCSBucketName))
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close GCS client", slog.String("error", err.Error()))
		}
	}, nil
}
