package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Harun1302123/impact-flow-optimizer-project/docs"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/analytics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/campaign"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/config"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/experiment"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/handler"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/logger"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/queue"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/queue/sqs"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Impact Flow Optimizer API
// @version 1.0
// @description Variant assignment, funnel analytics and campaign optimization for donation pages
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	store, closeStore, err := newAssignmentStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create assignment store", zap.Error(err))
	}
	defer closeStore()

	campaigns, closeCampaigns, err := newCampaignStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create campaign store", zap.Error(err))
	}
	defer closeCampaigns()

	var publisher queue.QueuePublisher
	if cfg.Analytics.ExportEnabled {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
		log.Info("Event export enabled", zap.String("queue_url", cfg.SQS.QueueURL))
	}

	aggregator := analytics.NewAggregator(analytics.AggregatorConfig{
		RecentLimit:   cfg.Analytics.RecentLimit,
		ExportTimeout: time.Duration(cfg.Analytics.ExportTimeoutSec) * time.Second,
	}, publisher, m, log)
	assigner := experiment.NewAssigner(store, m, log)

	experimentService := service.NewExperimentService(assigner, aggregator, log)
	campaignService := service.NewCampaignService(campaigns, aggregator, m, log)

	h := handler.NewHandler(experimentService, campaignService, registry, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("API server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Analytics.ReportIntervalSec > 0 {
		reporter := analytics.NewReporter(aggregator, time.Duration(cfg.Analytics.ReportIntervalSec)*time.Second, log)
		g.Go(func() error {
			return reporter.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("API service stopped with error", zap.Error(err))
		return
	}

	log.Info("API service stopped")
}

// newAssignmentStore returns the Redis store when a URL is configured,
// otherwise the in-process store
func newAssignmentStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (experiment.AssignmentStore, func(), error) {
	if cfg.Redis.URL == "" {
		log.Info("Using in-memory assignment store",
			zap.Int("max_assignments", cfg.Experiment.MaxAssignments))
		return experiment.NewMemoryStore(cfg.Experiment.MaxAssignments), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Using Redis assignment store", zap.String("addr", opts.Addr))

	return experiment.NewRedisStore(client, cfg.Redis.KeyPrefix), func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client", zap.Error(err))
		}
	}, nil
}

// newCampaignStore returns the Postgres store when a DSN is configured,
// otherwise the in-process store. Both start with the demo campaign.
func newCampaignStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (campaign.Store, func(), error) {
	demo := campaign.DemoCampaign(time.Now().UTC())

	if cfg.Postgres.DSN == "" {
		log.Info("Using in-memory campaign store")
		return campaign.NewMemoryStore(nil, demo), func() {}, nil
	}

	db, err := campaign.OpenPostgres(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, nil, err
	}

	store := campaign.NewPostgresStore(db, log)
	if err := store.InitSchema(ctx, demo); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return store, func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close postgres connection", zap.Error(err))
		}
	}, nil
}
