// Package api wires the HTTP surface: routes, middleware, error handling
// and Prometheus instrumentation.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minicrm/crm-api/internal/api/handler"
	"github.com/minicrm/crm-api/internal/api/middleware"
	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/service"
	"github.com/minicrm/crm-api/internal/infrastructure/config"
	mongodb "github.com/minicrm/crm-api/internal/infrastructure/db/mongo"
	"github.com/minicrm/crm-api/internal/infrastructure/db/redis"
	"github.com/minicrm/crm-api/internal/pkg/token"
)

// Auth endpoints share one fixed window per client IP.
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Infrastructure ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	counterRepo := mongodb.NewCounterRepository(db)
	limiter := redis.NewFixedWindowLimiter(rdb, authRateLimit, authRateWindow)

	tokens := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	articleService := service.NewArticleService(articleRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, articleRepo, counterRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	articleHandler := handler.NewArticleHandler(articleService)
	orderHandler := handler.NewOrderHandler(orderService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	session := middleware.Session(tokens, userRepo)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	rateLimit := middleware.RateLimit(limiter, log)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, rateLimit)
	auth.POST("/login", authHandler.Login, rateLimit)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, session)

	// --- Users (admin only) ---
	users := e.Group("/api/users", session, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Clients ---
	clients := e.Group("/api/clients", session)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Articles ---
	articles := e.Group("/api/articles", session)
	articles.GET("", articleHandler.List)
	articles.POST("", articleHandler.Create)
	articles.GET("/:id", articleHandler.Get)
	articles.PUT("/:id", articleHandler.Update)
	articles.DELETE("/:id", articleHandler.Delete)

	// --- Orders ---
	orders := e.Group("/api/orders", session)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Delete)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
