package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opshub/api/routes"
	"opshub/internal/auth"
	"opshub/internal/notifications"
	"opshub/internal/shared/config"
	"opshub/internal/shared/database"
	"opshub/internal/shared/security"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"
	"opshub/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title        OpsHub API
// @version      1.0
// @description  Authentication, site access and personal workspace for field and management staff.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// GIN_MODE and LOG_LEVEL may have come from .env
	logger.SetDefault(logger.New())
	appLogger = logger.GetDefault()

	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := security.NewTokenService(cfg.JWT)
	if err != nil {
		appLogger.Error("Failed to initialize token service", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			UserRequests:    cfg.RateLimit.UserRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Int("auth_requests", cfg.RateLimit.AuthRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	notifier, producer := resetNotifier(cfg, appLogger)
	if producer != nil {
		defer producer.Close()
	}

	appRouter := routes.NewRouter(cfg, db, tokens, notifier, registry, appLogger)
	router := setupRouter(appRouter, rateLimiter, appLogger)

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.Kafka.Enabled {
		consumerCfg := notifications.DefaultConsumerConfig()
		consumerCfg.Brokers = cfg.Kafka.Brokers
		consumerCfg.GroupID = cfg.Kafka.GroupID
		consumerCfg.Topics = []string{cfg.Kafka.ResetTopic}

		handler := notifications.NewConsumerGroupHandler(
			notifications.NewLogDeliverer(appLogger),
			appRouter.NotificationService(),
			appRouter.UserRepository(),
			consumerCfg,
			appLogger,
		)
		consumer, err := notifications.NewKafkaResetConsumer(consumerCfg, handler, appLogger)
		if err != nil {
			appLogger.Error("Failed to start reset consumer, links will not be delivered", slog.Any("error", err))
		} else {
			consumer.Start(consumerCtx)
			defer func() {
				appLogger.Info("Stopping reset consumer...")
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping reset consumer", slog.Any("error", err))
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_base", cfg.GetAPIBasePath()),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
			slog.Bool("mock_sso", cfg.Auth.MockSSOEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// resetNotifier picks where password reset tokens go. The producer is
// returned separately so main can close it.
func resetNotifier(cfg *config.Config, log *logger.Logger) (auth.ResetNotifier, *notifications.ResetProducer) {
	if !cfg.Kafka.Enabled {
		return auth.NewLogNotifier(cfg.Auth.ResetLinkBaseURL, log), nil
	}

	producerCfg := notifications.DefaultProducerConfig()
	producerCfg.Brokers = cfg.Kafka.Brokers
	producerCfg.Topic = cfg.Kafka.ResetTopic
	producerCfg.LinkBaseURL = cfg.Auth.ResetLinkBaseURL
	producerCfg.TokenTTL = cfg.Auth.ResetTokenTTL

	producer, err := notifications.NewKafkaResetProducer(producerCfg, log)
	if err != nil {
		log.Error("Kafka unavailable, reset links will only be logged", slog.Any("error", err))
		return auth.NewLogNotifier(cfg.Auth.ResetLinkBaseURL, log), nil
	}
	log.Info("Password reset events published to Kafka", slog.String("topic", producerCfg.Topic))
	return producer, producer
}

func setupRouter(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery(), metrics.Middleware())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger))
	}

	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
