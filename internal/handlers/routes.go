package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

var startTime = time.Now()

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Services   *services.ServiceContainer
	CookieName string
	StaticDir  string
	Components map[string]string // reported by /health
	Logger     logrus.FieldLogger
}

// MiddlewareConfig holds configuration for the global middleware chain
type MiddlewareConfig struct {
	Gate           *middleware.AccessGate
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	Logger         logrus.FieldLogger
}

// Handlers groups the request handlers shared by the server and the Lambda functions
type Handlers struct {
	Auth   *AuthHandler
	Orders *OrderHandler
	Images *ImageHandler
}

// NewHandlers creates every handler from the service container
func NewHandlers(svc *services.ServiceContainer, cookieName string, logger logrus.FieldLogger) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svc.AuthService, cookieName, logger),
		Orders: NewOrderHandler(svc.OrderService, logger),
		Images: NewImageHandler(svc.ImageService, logger),
	}
}

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := NewHandlers(config.Services, config.CookieName, logger)

	wrap := func(fn lambda.HandlerFunc) gin.HandlerFunc {
		return lambda.GinHandler(Recover(logger, fn))
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthCheck{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   Version,
			Services:  config.Components,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
		})
	})

	// Storefront API. Methods are checked by the handlers so unsupported
	// ones get a 405 rather than the router's 404.
	api := router.Group("/api")
	{
		api.Any("/login", wrap(h.Auth.HandleLogin))
		api.Any("/logout", wrap(h.Auth.HandleLogout))
		api.Any("/orders", wrap(h.Orders.HandleListOrders))
		api.Any("/image/:filename", wrap(h.Images.HandleProductImage))
		api.Any("/page-image/:filename", wrap(h.Images.HandlePageImage))
	}

	// Everything else is static content; the gate in the global chain has
	// already run for these paths.
	router.NoRoute(staticHandler(config.StaticDir))
}

// SetupMiddleware configures global middleware. The gate runs ahead of CORS
// so admin preflights without a session are rejected too.
func SetupMiddleware(router *gin.Engine, config *MiddlewareConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.SecurityHeaders())

	if config.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	}
	if config.RateLimitRPS > 0 {
		router.Use(middleware.RateLimiter(config.RateLimitRPS, config.RateLimitBurst, logger))
	}
	if config.Gate != nil {
		router.Use(config.Gate.Middleware())
	}

	router.Use(middleware.CORS())
}

func staticHandler(dir string) gin.HandlerFunc {
	if dir == "" {
		return func(c *gin.Context) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		}
	}
	return gin.WrapH(http.FileServer(http.Dir(dir)))
}
