package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/khrisnaSoluix/lending-engine/internal/adapter/http"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/handler"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/middleware"
	postgresRepo "github.com/khrisnaSoluix/lending-engine/internal/adapter/repository/postgres"
	redisRepo "github.com/khrisnaSoluix/lending-engine/internal/adapter/repository/redis"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/config"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/logger"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/metrics"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/notifier"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/redis"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	paramRepo := postgresRepo.NewParameterRepository(pool)
	postingRepo := postgresRepo.NewPostingRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	scheduleRepo := postgresRepo.NewScheduleRepository(pool)
	flagRepo := postgresRepo.NewFlagRepository(pool)
	refStore := redisRepo.NewReferenceStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	notices := notifier.NewRedisNotifier(redisClient, appLogger)

	// Initialize use case
	lendingUC := usecase.NewLendingUseCase(
		engine.New(),
		txManager,
		loanRepo,
		paramRepo,
		postingRepo,
		balanceRepo,
		scheduleRepo,
		flagRepo,
		refStore,
		notices,
		idGen,
	)

	// Initialize handlers
	derivedCache := redisRepo.NewCache(redisClient)
	loanHandler := handler.NewLoanHandler(lendingUC, derivedCache)
	transferHandler := handler.NewTransferHandler(lendingUC)
	scheduleHandler := handler.NewScheduleHandler(lendingUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LoanHandler:     loanHandler,
		TransferHandler: transferHandler,
		ScheduleHandler: scheduleHandler,
		HealthHandler:   healthHandler,
		RateLimiter:     rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Start the due-schedule sweeper and the pool gauge
	m := metrics.New()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()

	go observePoolSize(sweepCtx, pool, m)
	go cleanupRateLimiters(sweepCtx, rateLimiter)

	if cfg.SchedulerEnabled {
		go runScheduleSweeper(sweepCtx, lendingUC, postgresRepo.NewRetrier(appLogger), cfg.SchedulerInterval, m)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopSweep()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

type scheduleRunner interface {
	RunDueSchedules(ctx context.Context, before time.Time) (int, error)
}

// runScheduleSweeper periodically executes every schedule entry that has come
// due: accruals, due-amount calculations, delinquency checks and penalties.
func runScheduleSweeper(ctx context.Context, uc scheduleRunner, retrier *postgresRepo.Retrier, interval time.Duration, m *metrics.Metrics) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()

			err := retrier.Retry(ctx, func() error {
				ran, err := uc.RunDueSchedules(ctx, time.Now().UTC())
				if err != nil {
					return err
				}
				if ran > 0 {
					m.ScheduledEventsRun.Add(float64(ran))
					log.Info().Int("ran", ran).Msg("executed due schedules")
				}
				return nil
			})

			m.ScheduleSweepDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				m.ScheduleSweepFailures.Inc()
				log.Error().Err(err).Msg("schedule sweep failed")
			}
		}
	}
}

func cleanupRateLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters()
		}
	}
}

func observePoolSize(ctx context.Context, pool *pgxpool.Pool, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}
}
