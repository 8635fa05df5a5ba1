package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	"github.com/Madumtv/healthcentral-sub001/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	cfg     Config
	h       *handler.Handler
	public  []Handler
	private []Handler
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// New builds the engine. Handlers in public are reachable without a token;
// handlers in private sit behind JWT authentication.
func New(cfg Config, auth *middleware.AuthMiddleware, h *handler.Handler, public, private []Handler) *Router {
	return &Router{
		engine:  gin.New(),
		auth:    auth,
		cfg:     cfg,
		h:       h,
		public:  public,
		private: private,
		metrics: newRouterMetrics(),
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	r.engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(r.cfg.CORS),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.RateLimit(r.cfg.RateLimit, r.cfg.RateBurst),
		r.observe(),
	)

	r.engine.GET("/health", r.h.HealthCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api/v1")
	for _, h := range r.public {
		h.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(r.auth.Authenticate())
	for _, h := range r.private {
		h.RegisterRoutes(authed)
	}
}

func (r *Router) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, route, status).
			Observe(time.Since(start).Seconds())
	}
}
