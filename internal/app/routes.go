package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/middleware"
	"github.com/mx-space/linkpage/internal/modules/account"
	"github.com/mx-space/linkpage/internal/modules/catalog"
	"github.com/mx-space/linkpage/internal/modules/profile"
	"github.com/mx-space/linkpage/internal/modules/servertime"
	"github.com/mx-space/linkpage/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	apiPrefix       = "/api/v1"
	publicRateLimit = 120
)

func (a *App) registerRoutes() {
	r := a.router
	prefix := a.cfg.Storage.KeyPrefix

	r.NoRoute(func(c *gin.Context) {
		response.NotFoundMsg(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"ok": 0, "code": http.StatusMethodNotAllowed, "message": "method not allowed"})
	})

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	accountSvc := account.NewService(a.store, prefix, a.logger.Named("AccountService"))
	profileSvc := profile.NewService(a.store, accountSvc, prefix, a.logger.Named("ProfileService"))
	profileSvc.SetMetrics(a.metrics)
	profileSvc.Observe(profile.MetricsObserver(a.metrics))
	if a.redis != nil {
		profileSvc.Observe(profile.NewRedisPublisher(a.redis, a.cfg.Events.Channel, a.logger.Named("Events")).Observe)
	}

	// Three surfaces: anonymous reads (rate limited per IP), the owner's
	// editor routes (JWT) and the billing hook (shared secret).
	api := r.Group(apiPrefix)
	public := api.Group("")
	editor := api.Group("/profiles/:handle", middleware.Auth(), middleware.OwnerOnly("handle"))
	billing := api.Group("/billing", middleware.BillingKey(a.cfg.Billing.Secret))
	if a.redis != nil {
		public.Use(middleware.RateLimit(a.redis.Raw(), prefix, publicRateLimit))
		editor.Use(middleware.Idempotence(a.redis.Raw(), prefix))
	}

	servertime.RegisterRoutes(public)
	catalog.NewHandler().RegisterRoutes(public)
	profile.NewHandler(profileSvc).RegisterRoutes(public, editor)
	account.NewHandler(accountSvc).RegisterRoutes(editor, billing)
}

// GET /health
func (a *App) health(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"storage": a.cfg.Storage.Driver,
		"uptime":  humanizeDuration(time.Since(processStart)),
	}
	if a.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.redis.Ping(ctx); err != nil {
			a.logger.Warn("health: redis ping failed", zap.Error(err))
			status["status"] = "degraded"
			status["redis"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["redis"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}
