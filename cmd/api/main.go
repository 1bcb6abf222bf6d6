package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futurenews/db"
	"futurenews/internal/cache"
	"futurenews/internal/config"
	"futurenews/internal/entitlement"
	"futurenews/internal/generator"
	"futurenews/internal/handler"
	"futurenews/internal/metrics"
	"futurenews/internal/middleware"
	"futurenews/internal/repository"
	"futurenews/pkg/llm"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var storyCache cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		err = db.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		storyCache = cache.NewRedis(db.Redis)
	}

	entitlementRepo := repository.NewEntitlementRepository(db.DB, cfg.DatabaseDriver)
	ledger := entitlement.NewLedger(entitlementRepo, cfg.FreeTrialLimit)

	gen := generator.New(newCompleter(cfg.LLM), cfg.LLMTimeout)

	storyHandler := handler.NewStoryHandler(ledger, gen, storyCache)
	entitlementHandler := handler.NewEntitlementHandler(ledger)
	healthHandler := handler.NewHealthHandler(entitlementRepo)
	limiter := middleware.NewRateLimiter(cfg.GenerateRate)

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	r.Use(metrics.Middleware())

	api := r.Group("/api")
	api.POST("/generate", limiter.Middleware(), storyHandler.Generate)
	api.GET("/story/:id/details", storyHandler.GetStoryDetails)
	api.GET("/trial/:device_id", entitlementHandler.GetTrialStatus)
	api.GET("/tokens/:token", entitlementHandler.GetTokenStatus)
	api.GET("/metrics", metrics.Handler())
	r.GET("/health", healthHandler.GetHealth)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	slog.Info("server started", "addr", srv.Addr, "llm_provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	<-stop
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}

func newCompleter(cfg config.LLMConfig) llm.Completer {
	if cfg.Provider == config.ProviderAnthropic {
		return llm.NewAnthropicClient(cfg.APIKey, cfg.Model)
	}
	return llm.NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
}
