package handler

import (
	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/middleware"
	redisStore "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/storage/redis"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	UserSvc        ports.UserService
	AssetSvc       ports.AssetService
	TradeSvc       ports.TradeService
	PricingSvc     ports.PricingService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	MetricsReg     *prometheus.Registry // nil = metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	if deps.MetricsReg != nil {
		metrics := middleware.NewMetrics(deps.MetricsReg)
		r.Use(metrics.Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{})))
	}

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Unversioned demo endpoint, kept for client smoke tests.
	r.GET("/api/assets", DemoAssets)

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	userHandler := NewUserHandler(deps.UserSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), userHandler.Login)
	}

	users := v1.Group("/users")
	{
		users.POST("", rl("users"), userHandler.Create)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	usersAuth := v1.Group("/users", jwtAuth)
	{
		usersAuth.GET("/me", rl("users"), userHandler.Me)
		usersAuth.GET("/:id", rl("users"), userHandler.GetByID)
		usersAuth.GET("/", rl("users"), userHandler.List)
	}

	assetHandler := NewAssetHandler(deps.AssetSvc)
	assets := v1.Group("/assets", jwtAuth)
	{
		assets.POST("", rl("assets"), assetHandler.Create)
		assets.GET("", rl("assets"), assetHandler.List)
		assets.GET("/market/summary", rl("assets"), assetHandler.MarketSummary)
		assets.GET("/:id", rl("assets"), assetHandler.GetByID)
		assets.PUT("/:id", rl("assets"), assetHandler.Update)
		assets.DELETE("/:id", rl("assets"), assetHandler.Delete)
	}

	tradeHandler := NewTradeHandler(deps.TradeSvc)
	trades := v1.Group("/trades/orders", jwtAuth)
	{
		trades.POST("", rl("trades"), tradeHandler.Create)
		trades.GET("", rl("trades"), tradeHandler.List)
		trades.GET("/:id", rl("trades"), tradeHandler.GetByID)
		trades.PUT("/:id", rl("trades"), tradeHandler.Update)
		trades.DELETE("/:id", rl("trades"), tradeHandler.Cancel)
		trades.POST("/:id/execute", rl("trades"), tradeHandler.Execute)
	}

	pricingHandler := NewPricingHandler(deps.PricingSvc)
	pricing := v1.Group("/pricing", jwtAuth)
	{
		pricing.GET("/market", rl("pricing"), pricingHandler.MarketPrices)
		pricing.GET("/market/:asset_type", rl("pricing"), pricingHandler.MarketPrice)
		pricing.POST("/history", rl("pricing"), pricingHandler.CreateHistory)
		pricing.GET("/history/:asset_id", rl("pricing"), pricingHandler.History)
		pricing.POST("/update-prices", rl("pricing_update"), pricingHandler.UpdatePrices)
		pricing.GET("/trends", rl("pricing"), pricingHandler.Trends)
	}

	return r
}
