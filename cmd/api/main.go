package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	redisbackend "github.com/redis/go-redis/v9"

	"github.com/netventas/visitbot/internal/config"
	"github.com/netventas/visitbot/internal/dedup"
	"github.com/netventas/visitbot/internal/handler"
	"github.com/netventas/visitbot/internal/metrics"
	"github.com/netventas/visitbot/internal/model/visit"
	"github.com/netventas/visitbot/internal/repository"
	"github.com/netventas/visitbot/internal/service/form"
	"github.com/netventas/visitbot/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn("failed to load .env file, continuing with system environment", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	catalogs, err := visit.LoadCatalogs(cfg.Form.CatalogFile)
	if err != nil {
		logger.Error("failed to load option catalogs", "err", err)
		os.Exit(1)
	}

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.Dynamo.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.Dynamo.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	visits, err := repository.NewVisits(awsdynamodb.NewFromConfig(awsCfg), cfg.Dynamo.Table)
	if err != nil {
		logger.Error("failed to create visits repository", "err", err)
		os.Exit(1)
	}

	store := session.NewMemoryStore(cfg.Form.SessionTTL)
	defer store.Close()
	metrics.RegisterSessionGauge(store.Count)

	var deduper dedup.Deduper = dedup.Noop{}
	if cfg.Redis.Addr != "" {
		redisClient := redisbackend.NewClient(&redisbackend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, webhook dedup disabled", "addr", cfg.Redis.Addr, "err", err)
		} else {
			deduper = dedup.NewRedis(redisClient)
			logger.Info("webhook dedup enabled", "addr", cfg.Redis.Addr)
		}
	}

	formService := form.NewService(store, visits, catalogs, cfg.Form.VendorID, logger)
	router := handler.NewRouter(formService, store, deduper, cfg.Twilio.AuthToken, cfg.Twilio.PublicBaseURL, logger)

	if cfg.Twilio.AuthToken == "" {
		logger.Warn("TWILIO_AUTH_TOKEN not set, webhook signature validation disabled")
	}

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("sales visit chatbot listening", "addr", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
