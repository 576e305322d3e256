package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/config"
	"github.com/mx-space/linkpage/internal/middleware"
	"github.com/mx-space/linkpage/internal/pkg/metrics"
	pkgredis "github.com/mx-space/linkpage/internal/pkg/redis"
	"github.com/mx-space/linkpage/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	store   store.Store
	redis   *pkgredis.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
	closers []func() error
}

// New initializes the application: runtime settings → store → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger}

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	a.metrics = m

	if cfg.RedisEnabled() {
		rc, err := pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = rc
		a.closers = append(a.closers, rc.Close)
	}

	st, closeStore, err := openStore(context.Background(), cfg, a.redis)
	if err != nil {
		a.Shutdown()
		return nil, fmt.Errorf("storage: %w", err)
	}
	a.store = st
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(m.Middleware())
	router.Use(cors.New(corsConfig(cfg)))
	a.router = router

	a.registerRoutes()
	return a, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "x-idempotence"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool { return originAllowed(patterns, origin) }
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// originAllowed matches the origin's host[:port] against glob patterns such
// as "pages.example", "*.pages.example" or "localhost:*". Scheme is ignored.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)
	for _, pattern := range patterns {
		if ok, _ := path.Match(strings.ToLower(pattern), host); ok {
			return true
		}
	}
	return false
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases connections in reverse order of creation.
func (a *App) Shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("shutdown", zap.Error(err))
		}
	}
	a.closers = nil
}

var processStart = time.Now()
