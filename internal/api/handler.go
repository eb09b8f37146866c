package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nitesh/trends_service/internal/metrics"
	"github.com/nitesh/trends_service/internal/service"
)

const (
	errRedditFetch = "Failed to fetch Reddit trends"
	errGoogleFetch = "Failed to fetch Google trends"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func NewHandler(svc *service.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, logger: logger}
}

// NewRouter builds the engine with recovery, request logging and all routes.
func NewRouter(h *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger, m))
	RegisterRoutes(r, h, gatherer)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler, gatherer prometheus.Gatherer) {
	r.GET("/healthz", h.Health)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.GET("/reddit-trends", h.RedditTrends)
		api.GET("/google-trends", h.GoogleTrends)
	}
}

// RedditTrends: GET /api/reddit-trends
// Responds with the reddit listing exactly as fetched.
func (h *Handler) RedditTrends(c *gin.Context) {
	body, err := h.svc.RedditTrends(c.Request.Context())
	if err != nil {
		h.logger.Error("error fetching reddit trends", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errRedditFetch})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	h.logger.Info("reddit trends fetched and sent")
}

// GoogleTrends: GET /api/google-trends
// Responds with the raw upstream text.
func (h *Handler) GoogleTrends(c *gin.Context) {
	body, err := h.svc.GoogleTrends(c.Request.Context())
	if err != nil {
		h.logger.Error("error fetching google trends", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errGoogleFetch})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
	h.logger.Info("google trends fetched and sent (raw data)")
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
