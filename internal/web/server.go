// Package web exposes the site's JSON API over gin.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/contact"
	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/news"
	"github.com/camuig/fx-signals/internal/observability"
	"github.com/camuig/fx-signals/internal/signals"
)

type SignalFeed interface {
	Data(ctx context.Context, q signals.Query) (*signals.Page, error)
	Daily(ctx context.Context, search string) (*signals.Page, error)
	Monthly(ctx context.Context, search string) (*signals.Page, error)
}

type NewsService interface {
	Latest(ctx context.Context, pair string) ([]news.NewsItem, bool)
}

type ContactService interface {
	Submit(ctx context.Context, sub contact.Submission, origin string) (*contact.Result, error)
}

// Pinger reports whether the signal store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the handlers call. Store may be nil.
type Deps struct {
	Feed    SignalFeed
	News    NewsService
	Contact ContactService
	Store   Pinger
	Metrics *observability.Metrics
}

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	deps       Deps
	origins    *contact.OriginPolicy
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(deps Deps, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		deps:    deps,
		origins: contact.NewOriginPolicy(cfg.Origins(), cfg.Web.EnforceOrigin),
		config:  cfg,
		logger:  log,
	}

	s.engine = gin.New()
	s.engine.Use(
		s.recovery(),
		requestID(),
		s.accessLog(),
		s.instrument(),
	)
	s.routes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	if s.deps.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := s.engine.Group("/api")
	api.GET("/signals/data", s.handleSignalsData)
	api.GET("/signals/daily", s.handleSignalsDaily)
	api.GET("/signals/monthly", s.handleSignalsMonthly)
	api.GET("/news-api", s.handleNews)
	api.GET("/tradingview-news", s.handleTradingViewNews)
	if s.origins.Enforced() {
		api.POST("/contact", s.requireOrigin(), s.handleContact)
	} else {
		api.POST("/contact", s.handleContact)
	}
}

// Handler returns the gin engine, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port, "origin_check", s.origins.Enforced())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
