// Package server wires repositories, services and handlers into the gin
// engine.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "thaitravel/api/swagger" // swagger docs
	"thaitravel/internal/auth"
	"thaitravel/internal/config"
	"thaitravel/internal/handler"
	"thaitravel/internal/metrics"
	"thaitravel/internal/middleware"
	"thaitravel/internal/repository"
	"thaitravel/internal/service"
	"thaitravel/internal/websocket"
	"thaitravel/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the router is built from. Redis is
// optional; without it login lockout is tracked in memory.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Hub      *websocket.Hub
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// NewRouter sets up the dependency graph (Repository -> Service -> Handler)
// and returns the engine.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	handler.RegisterValidators()

	m := metrics.New(registry)
	tokens := auth.NewTokenManager([]byte(cfg.JWT.Secret), cfg.JWT.AccessTokenTTL)
	limiter := auth.NewLoginLimiter(deps.Redis, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow)

	// Repositories
	txManager := repository.NewTransactionManager(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	roleRepo := repository.NewRoleRepository(deps.DB)
	baseRepo := repository.NewProvinceTaxRepository(deps.DB)
	registrationRepo := repository.NewRegistrationRepository(deps.DB)
	auditRepo := repository.NewAuditRepository(deps.DB)

	// Services
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithAdminUsernames(cfg.AdminUsernames),
	}
	if deps.Hub != nil {
		opts = append(opts, service.WithEventPublisher(deps.Hub))
	}
	auditService := service.NewAuditService(auditRepo, opts...)
	userService := service.NewUserService(userRepo, roleRepo, tokens, limiter, auditService, opts...)
	provinceTaxService := service.NewProvinceTaxService(baseRepo, auditService, opts...)
	registrationService := service.NewRegistrationService(txManager, registrationRepo, baseRepo, auditService, opts...)
	roleService := service.NewRoleService(roleRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService, logger)
	provinceTaxHandler := handler.NewProvinceTaxHandler(provinceTaxService, registrationService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)
	roleHandler := handler.NewRoleHandler(roleService, logger)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.Metrics(m))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSAllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/health", healthHandler(deps.DB))

	authn := middleware.Authenticate(tokens, userRepo, logger)

	v1 := router.Group("/v1")
	userHandler.RegisterRoutes(v1, authn)
	provinceTaxHandler.RegisterRoutes(v1, authn)
	auditHandler.RegisterRoutes(v1, authn)
	roleHandler.RegisterRoutes(v1, authn)

	if deps.Hub != nil {
		v1.GET("/ws/province_tax", func(c *gin.Context) {
			websocket.ServeWs(deps.Hub, c, tokens, userRepo)
		})
	}

	return router
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, "database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}
