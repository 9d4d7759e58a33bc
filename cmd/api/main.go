package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/config"
	httpHandler "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/handler"
	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/pricefeed"
	pgStorage "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/storage/postgres"
	redisStorage "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/storage/redis"
	"github.com/VWA-XRPL/VWA-XRPL/internal/chain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/internal/service"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
)

// tokenProgramID identifies the on-chain program that minted assets
// are derived against.
const tokenProgramID = "VWASo1ana1111111111111111111111111111111111"

func main() {
	// Flat .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting VWA tokenization API")

	ctx := context.Background()

	// PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Repositories
	userRepo := pgStorage.NewUserRepo(pool)
	assetRepo := pgStorage.NewAssetRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	historyRepo := pgStorage.NewPriceHistoryRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis stores
	marketCache := redisStorage.NewMarketCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// External price feed: disabled unless both API keys are configured.
	var feed ports.PriceFeed
	if cfg.Pricing.MetalsAPIKey != "" && cfg.Pricing.GemsAPIKey != "" {
		feed = pricefeed.New(cfg.Pricing.FeedURL, cfg.Pricing.MetalsAPIKey, cfg.Pricing.GemsAPIKey, log)
		log.Info().Msg("External price feed enabled")
	} else {
		log.Warn().Msg("Price feed API keys not configured, using base prices")
	}

	// Core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Expiry, cfg.JWT.Issuer)
	tokenizer := chain.NewAddressDeriver(tokenProgramID)

	// Business services
	userSvc := service.NewUserService(userRepo, tokenSvc, log)
	assetSvc := service.NewAssetService(assetRepo, userRepo, orderRepo, historyRepo, tokenizer, log)
	tradeSvc := service.NewTradeService(orderRepo, assetRepo, log)
	pricingSvc := service.NewPricingService(assetRepo, historyRepo, marketCache, feed, transactor, log)

	// Health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Metrics registry
	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Order expiry sweeper: pending orders past their expires_at move
	// to expired once a minute.
	sweeper := cron.New()
	_, err = sweeper.AddFunc("* * * * *", func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := tradeSvc.ExpireDue(sweepCtx)
		if err != nil {
			log.Error().Err(err).Msg("Order expiry sweep failed")
			return
		}
		if n > 0 {
			log.Info().Int64("expired", n).Msg("Expired due orders")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule order expiry sweep")
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Gin router
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		UserSvc:        userSvc,
		AssetSvc:       assetSvc,
		TradeSvc:       tradeSvc,
		PricingSvc:     pricingSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		MetricsReg:     metricsReg,
		Logger:         log,
	})

	// HTTP server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
