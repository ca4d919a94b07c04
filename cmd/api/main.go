package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/shopper-funnel/internal/config"
	"github.com/xavierca1/shopper-funnel/internal/infra/cache"
	"github.com/xavierca1/shopper-funnel/internal/infra/database"
	"github.com/xavierca1/shopper-funnel/internal/infra/http/handlers"
	"github.com/xavierca1/shopper-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/shopper-funnel/internal/infra/mail"
	"github.com/xavierca1/shopper-funnel/internal/infra/queue"
	"github.com/xavierca1/shopper-funnel/internal/infra/worker"
	"github.com/xavierca1/shopper-funnel/internal/logger"
	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type funnelCache interface {
	usecase.FunnelCache
	Health(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("shopper funnel api stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}
	applicantRepo := database.NewApplicantRepository(db)

	// 2. Funnel cache
	var weekCache funnelCache
	rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{URL: cfg.RedisURL})
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		weekCache = cache.NewRedisFunnelCache(rdb, cache.WithPrefix(cfg.RedisPrefix))
		log.Info().Str("prefix", cfg.RedisPrefix).Msg("funnel cache backed by redis")
	} else {
		weekCache = cache.NewMemoryFunnelCache()
		log.Warn().Msg("REDIS_URL not set, funnel cache is in-process")
	}

	// 3. Messaging
	var (
		rabbitMQ *queue.RabbitMQ
		producer usecase.QueueProducerInterface
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		producer = queue.NewProducer(rabbitMQ.Ch)
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, registration events are disabled")
	}

	// 4. Use cases
	metrics := middleware.UseCaseMetrics{}
	aggregator := usecase.NewFunnelAggregator(weekCache, applicantRepo, metrics)

	registerUC := usecase.NewRegisterApplicantUseCase(applicantRepo, aggregator, producer, metrics)
	getUC := usecase.NewGetApplicationUseCase(applicantRepo)
	updateUC := usecase.NewUpdateApplicantUseCase(applicantRepo)
	advanceUC := usecase.NewAdvanceWorkflowUseCase(applicantRepo, aggregator)
	availabilityUC := usecase.NewCheckAvailabilityUseCase(applicantRepo)
	seedUC := usecase.NewSeedApplicantsUseCase(applicantRepo, aggregator, nil)
	funnelUC := usecase.NewGenerateFunnelReportUseCase(aggregator)

	// 5. Handlers
	var rabbitHealth handlers.ConnectionChecker
	if rabbitMQ != nil {
		rabbitHealth = rabbitMQ
	}

	limiter := middleware.NewRateLimiter(cfg.RegisterRPS, cfg.RegisterBurst)
	limiter.StartJanitor(ctx, time.Minute)

	router := newRouter(routerDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		RegisterLimit:  limiter,
		Applicants:     handlers.NewApplicantHandler(registerUC, getUC, updateUC, advanceUC),
		Validation:     handlers.NewValidationHandler(availabilityUC),
		Funnel:         handlers.NewFunnelHandler(funnelUC),
		Seed:           handlers.NewSeedHandler(seedUC),
		Health:         handlers.NewHealthHandler(db, weekCache, rabbitHealth),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})

	if rabbitMQ != nil && cfg.MailEnabled() {
		sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		consumer := queue.NewWorker(rabbitMQ.Ch, sender)
		g.Go(func() error {
			return consumer.Start(gctx, queue.QueueName)
		})
	}

	if cfg.WarmupSchedule != "" {
		warmup := worker.NewFunnelWarmupWorker(aggregator, cfg.WarmupSchedule, cfg.WarmupWeeks)
		g.Go(func() error {
			return warmup.Start(gctx)
		})
	}

	return g.Wait()
}
