package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	bookingapp "github.com/mobelhaus/storefront/internal/application/booking"
	cartapp "github.com/mobelhaus/storefront/internal/application/cart"
	catalogapp "github.com/mobelhaus/storefront/internal/application/catalog"
	checkoutapp "github.com/mobelhaus/storefront/internal/application/checkout"
	identityapp "github.com/mobelhaus/storefront/internal/application/identity"
	"github.com/mobelhaus/storefront/internal/infrastructure/auth"
	"github.com/mobelhaus/storefront/internal/infrastructure/cache"
	"github.com/mobelhaus/storefront/internal/infrastructure/config"
	"github.com/mobelhaus/storefront/internal/infrastructure/logger"
	"github.com/mobelhaus/storefront/internal/infrastructure/persistence"
	"github.com/mobelhaus/storefront/internal/interfaces/http/handler"
	"github.com/mobelhaus/storefront/internal/interfaces/http/middleware"
	"github.com/mobelhaus/storefront/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.NewForEnvironment("production")
		fallback.Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	consultationRepo := persistence.NewGormConsultationRepository(db.DB)

	// Product cache is optional; the catalog works without it
	var productCache *cache.RedisProductCache
	var cachePinger handler.Pinger
	var catalogCache catalogapp.ProductCache
	if cfg.Cache.Enabled {
		productCache = cache.NewRedisProductCache(cfg.Redis, cfg.Cache.ProductTTL, log)
		defer productCache.Close()
		cachePinger = productCache
		catalogCache = productCache
	}

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher(0)

	// Application services
	cartService := cartapp.NewCartService(cartRepo)
	checkoutService := checkoutapp.NewCheckoutService(orderRepo, cartRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, catalogCache, log)
	userService := identityapp.NewUserService(userRepo, hasher, jwtService, log)
	consultationService := bookingapp.NewConsultationService(consultationRepo, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	requireAuth := middleware.RequireAuth(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)
	requireAdmin := middleware.RequireAdmin()

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(cfg.App.Name, db, cachePinger)).
		Register(handler.NewAuthHandler(userService, requireAuth)).
		Register(handler.NewProductHandler(productService, requireAuth, requireAdmin)).
		Register(handler.NewCartHandler(cartService, requireAuth)).
		Register(handler.NewCheckoutHandler(checkoutService, requireAuth, optionalAuth, requireAdmin)).
		Register(handler.NewBookingHandler(consultationService, requireAuth, optionalAuth, requireAdmin))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
