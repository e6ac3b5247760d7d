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

	"github.com/Kosench/linkpulse/internal/cache"
	"github.com/Kosench/linkpulse/internal/config"
	"github.com/Kosench/linkpulse/internal/database"
	"github.com/Kosench/linkpulse/internal/geo"
	"github.com/Kosench/linkpulse/internal/handler"
	"github.com/Kosench/linkpulse/internal/heatmap"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/repository"
	"github.com/Kosench/linkpulse/internal/service"
	"github.com/Kosench/linkpulse/internal/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureSchema(schemaCtx, db)
	cancelSchema()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to ensure schema")
	}
	logging.Info().Str("host", cfg.Database.Host).Msg("connected to database")

	// Без Redis работаем через NullCache и in-memory rate limit
	var (
		linkCache   cache.CacheManager = cache.NewNullCache()
		redisClient *cache.RedisClient
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			CacheTTL:     cfg.Redis.CacheTTL,
		})
		if err != nil {
			logging.Warn().Err(err).Msg("failed to connect to Redis, running without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
			linkCache = redisClient
			logging.Info().Msg("connected to Redis")
		}
	}

	provider, closeProvider, err := geo.NewProvider(cfg.Geo)
	if err != nil {
		// география не обязательна, редиректы продолжают работать без нее
		logging.Warn().Err(err).Str("provider", cfg.Geo.Provider).Msg("geo provider unavailable, lookups disabled")
		provider = nil
	}
	defer closeProvider()

	if cfg.Geo.TestOverrideEnabled && !cfg.IsDevelopment() {
		logging.Warn().Str("environment", cfg.App.Environment).Msg("test geo override headers are accepted outside development")
	}

	geoCfg, err := geo.ResolverConfig(cfg.Geo)
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid geo config")
	}

	geometries, err := heatmap.LoadGeometries(cfg.Heatmap.GeometryPath)
	if err != nil {
		logging.Warn().Err(err).Str("path", cfg.Heatmap.GeometryPath).Msg("failed to load heatmap geometry, shapes will be empty")
	}

	var keys *cache.KeyBuilder
	if redisClient != nil {
		keys = redisClient.GetKeyBuilder()
	}

	linkRepo := repository.NewCachedLinkRepository(repository.NewPostgresLinkRepository(db), linkCache, keys)
	clickRepo := repository.NewPostgresClickRepository(db)

	extractor := tracking.NewExtractor(geo.NewResolver(geoCfg, provider))
	redirectService := service.NewRedirectService(service.NewLinkResolver(linkRepo), extractor, clickRepo)
	heatmapService := service.NewHeatmapService(clickRepo, heatmap.NewRenderer(geometries, cfg.Heatmap.NoDataColor))

	var rateLimit gin.HandlerFunc
	if redisClient != nil {
		rateLimit = handler.RedisRateLimitMiddleware(redisClient, keys, cfg.App.RateLimit, cfg.App.RateWindow)
	} else {
		rateLimit = handler.NewInMemoryRateLimiter(cfg.App.RateLimit, cfg.App.RateWindow).Middleware()
	}

	var cacheChecker handler.Checker
	if redisClient != nil {
		cacheChecker = redisClient
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		RateLimit:      rateLimit,
		Redirect:       handler.NewRedirectHandler(redirectService),
		Heatmap:        handler.NewHeatmapHandler(heatmapService),
		Health: handler.NewHealthHandler(
			handler.CheckerFunc(func(ctx context.Context) error { return database.HealthCheck(ctx, db) }),
			cacheChecker,
			func(ctx context.Context) (string, error) { return database.GetVersion(ctx, db) },
		),
	})

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logging.Info().
			Str("addr", cfg.GetServerAddress()).
			Str("geo_provider", cfg.Geo.Provider).
			Bool("cache", redisClient != nil).
			Int("geometries", len(geometries)).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down server")

	// Shutdown дожидается активных запросов, включая запись кликов
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
	}

	logging.Info().Msg("server stopped")
}
