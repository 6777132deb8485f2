package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/altynbek8/ServiceApp/internal/handler"
	authH "github.com/altynbek8/ServiceApp/internal/handler/auth"
	bookingH "github.com/altynbek8/ServiceApp/internal/handler/booking"
	chatH "github.com/altynbek8/ServiceApp/internal/handler/chat"
	favoriteH "github.com/altynbek8/ServiceApp/internal/handler/favorite"
	notificationH "github.com/altynbek8/ServiceApp/internal/handler/notification"
	portfolioH "github.com/altynbek8/ServiceApp/internal/handler/portfolio"
	profileH "github.com/altynbek8/ServiceApp/internal/handler/profile"
	providerH "github.com/altynbek8/ServiceApp/internal/handler/provider"
	reviewH "github.com/altynbek8/ServiceApp/internal/handler/review"
	searchH "github.com/altynbek8/ServiceApp/internal/handler/search"
	"github.com/altynbek8/ServiceApp/internal/middleware"
)

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	h             *handler.Handler
	authH         *authH.Handler
	profileH      *profileH.Handler
	providerH     *providerH.Handler
	bookingH      *bookingH.Handler
	chatH         *chatH.Handler
	searchH       *searchH.Handler
	favoriteH     *favoriteH.Handler
	portfolioH    *portfolioH.Handler
	reviewH       *reviewH.Handler
	notificationH *notificationH.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS  float64
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type Handlers struct {
	Base         *handler.Handler
	Auth         *authH.Handler
	Profile      *profileH.Handler
	Provider     *providerH.Handler
	Booking      *bookingH.Handler
	Chat         *chatH.Handler
	Search       *searchH.Handler
	Favorite     *favoriteH.Handler
	Portfolio    *portfolioH.Handler
	Review       *reviewH.Handler
	Notification *notificationH.Handler
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		h:             handlers.Base,
		authH:         handlers.Auth,
		profileH:      handlers.Profile,
		providerH:     handlers.Provider,
		bookingH:      handlers.Booking,
		chatH:         handlers.Chat,
		searchH:       handlers.Search,
		favoriteH:     handlers.Favorite,
		portfolioH:    handlers.Portfolio,
		reviewH:       handlers.Review,
		notificationH: handlers.Notification,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorLogger(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitRPS > 0 {
		rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateBurst)
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)
	r.providerH.RegisterRoutes(api)
	r.bookingH.RegisterRoutes(api)
	r.reviewH.RegisterRoutes(api)
	r.searchH.RegisterRoutes(api)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	{
		r.authH.RegisterProtectedRoutes(protected)
		r.profileH.RegisterRoutes(protected)
		r.bookingH.RegisterClientRoutes(protected)
		r.reviewH.RegisterClientRoutes(protected)
		r.favoriteH.RegisterRoutes(protected)
		r.chatH.RegisterRoutes(protected)
		r.notificationH.RegisterRoutes(protected)
	}

	// Provider-only routes
	providers := protected.Group("")
	providers.Use(r.auth.RequireProvider())
	{
		r.providerH.RegisterProviderRoutes(providers)
		r.bookingH.RegisterProviderRoutes(providers)
		r.portfolioH.RegisterProviderRoutes(providers)
	}

	// Admin moderation routes
	admin := protected.Group("")
	admin.Use(r.auth.RequireAdmin())
	{
		r.profileH.RegisterAdminRoutes(admin)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
