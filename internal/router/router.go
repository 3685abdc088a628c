package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/itsivali/careconnect-v1/internal/handler"
	"github.com/itsivali/careconnect-v1/internal/middleware"
	"github.com/itsivali/careconnect-v1/pkg/auth"
)

// PublicHandler registers routes that need no authentication.
type PublicHandler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// GuardedHandler registers routes behind authentication, with an extra
// guard applied to its admin-only subset.
type GuardedHandler interface {
	RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        PublicHandler
	patientH     GuardedHandler
	doctorH      GuardedHandler
	appointmentH GuardedHandler
	catalogH     GuardedHandler
	billingH     GuardedHandler
	ops          *handler.Handler
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(
	authMW *middleware.AuthMiddleware,
	authH PublicHandler,
	patientH, doctorH, appointmentH, catalogH, billingH GuardedHandler,
	ops *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         authMW,
		authH:        authH,
		patientH:     patientH,
		doctorH:      doctorH,
		appointmentH: appointmentH,
		catalogH:     catalogH,
		billingH:     billingH,
		ops:          ops,
		metrics:      initRouterMetrics(config.MetricsPrefix),
	}

	// Metrics wrap ErrorHandler so the post-Next phase observes the
	// status ErrorHandler writes for failed requests.
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.ErrorHandler(),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", r.ops.HealthCheck)
	r.engine.GET("/metrics", r.ops.MetricsHandler)

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes: registration and login.
	r.authH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.RequireAuth())
	adminOnly := r.auth.RequireAuth(auth.RoleAdmin)

	r.patientH.RegisterRoutes(protected, adminOnly)
	r.doctorH.RegisterRoutes(protected, adminOnly)
	r.appointmentH.RegisterRoutes(protected, adminOnly)
	r.catalogH.RegisterRoutes(protected, adminOnly)
	r.billingH.RegisterRoutes(protected, adminOnly)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("", r.ops.HealthCheck)
		health.GET("/live", r.ops.LivenessCheck)
		health.GET("/ready", r.ops.ReadinessCheck)
		health.GET("/metrics", r.ops.MetricsHandler)
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
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
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

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
