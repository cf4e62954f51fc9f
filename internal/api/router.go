// internal/api/router.go

// Package api serves the chat and trend-analysis pipelines over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/models"
)

type ChatService interface {
	Ask(ctx context.Context, question string) (*models.ChatResponse, error)
}

type TrendService interface {
	Analyze(ctx context.Context) (*models.TrendAnalysisResponse, error)
}

// Checker is a dependency probed by /ready.
type Checker struct {
	Name string
	Ping func(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Checkers       []Checker
}

// allowedHeaders matches what the dashboard front end sends.
var allowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

func NewRouter(chat ChatService, trends TrendService, opts Options, log logger.Logger) http.Handler {
	h := &Handler{
		chat:     chat,
		trends:   trends,
		checkers: opts.Checkers,
		logger:   log.With(map[string]interface{}{"component": "api"}),
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: allowedHeaders,
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(opts.RequestTimeout))
		}
		r.Post("/chat", h.Chat)
		r.Post("/analyze-trends", h.AnalyzeTrends)
	})

	return r
}
