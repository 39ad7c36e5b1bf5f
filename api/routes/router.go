// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "opshub/docs"
	"opshub/internal/auth"
	"opshub/internal/dashboards"
	"opshub/internal/notifications"
	"opshub/internal/preferences"
	"opshub/internal/shared/config"
	"opshub/internal/shared/database"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/security"
	"opshub/internal/sites"
	"opshub/internal/tools"
	"opshub/internal/users"
	"opshub/pkg/cache"
	"opshub/pkg/logger"
	"opshub/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "opshub-backend"

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	tokens   *security.TokenService
	notifier auth.ResetNotifier
	registry *prometheus.Registry
	log      *logger.Logger

	userRepo            users.Repository
	siteService         sites.Service
	notificationService notifications.Service
}

// NewRouter creates a new router instance. notifier receives password reset
// tokens; it is the Kafka producer or the log fallback.
func NewRouter(cfg *config.Config, db *database.DB, tokens *security.TokenService, notifier auth.ResetNotifier, registry *prometheus.Registry, log *logger.Logger) *Router {
	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.Redis)
	}

	pg := db.GetPostgreSQL()
	return &Router{
		config:              cfg,
		db:                  db,
		tokens:              tokens,
		notifier:            notifier,
		registry:            registry,
		log:                 log,
		userRepo:            users.NewRepository(pg),
		siteService:         sites.NewService(sites.NewRepository(pg), cacheService),
		notificationService: notifications.NewService(notifications.NewRepository(pg)),
	}
}

// UserRepository exposes the shared user store to background consumers.
func (r *Router) UserRepository() users.Repository {
	return r.userRepo
}

func (r *Router) NotificationService() notifications.Service {
	return r.notificationService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/metrics", gin.WrapH(metrics.Handler(r.registry)))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.JWTAuth(r.tokens, r.config.JWT)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api, authRequired)
		r.setupUserRoutes(api, authRequired)

		sites.SetupSiteRoutes(api, sites.NewController(r.siteService), authRequired)

		toolService := tools.NewService(tools.NewRepository(r.db.GetPostgreSQL()))
		tools.SetupToolRoutes(api, tools.NewController(toolService), authRequired)

		dashboardService := dashboards.NewService(dashboards.NewRepository(r.db.GetPostgreSQL()))
		dashboards.SetupDashboardRoutes(api, dashboards.NewController(dashboardService), authRequired)

		notifications.SetupNotificationRoutes(api, notifications.NewController(r.notificationService), authRequired)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"redis_cache": r.db.Redis != nil,
			"mock_sso":    r.config.Auth.MockSSOEnabled,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	authService := auth.NewService(
		r.userRepo,
		r.tokens,
		security.NewPasswordHasher(),
		r.notifier,
		r.config.Auth,
		auth.WithLogger(r.log),
		auth.WithMetrics(metrics.NewAuthMetrics(r.registry)),
	)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, authRequired, r.config.Auth.MockSSOEnabled)

	authRouter.SetupRoutes(rg, middleware.Authenticate(r.tokens, r.config.JWT))
}

// setupUserRoutes mounts the profile endpoints and the free-form preference
// document under the same /users/me prefix.
func (r *Router) setupUserRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	userController := users.NewController(users.NewService(r.userRepo), r.siteService)
	users.SetupUserRoutes(rg, userController, authRequired)

	preferenceRepo := preferences.NewRepository(r.db.GetPostgreSQL())
	preferenceController := preferences.NewController(preferences.NewService(preferenceRepo, r.log))
	preferences.SetupPreferenceRoutes(rg, preferenceController, authRequired)
}
