package api

import (
	"net/http"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jayeshk55/CredLink-sub000/internal/api/handler"
	"github.com/jayeshk55/CredLink-sub000/internal/api/middleware"
	"github.com/jayeshk55/CredLink-sub000/internal/config"
)

// registerValidations 注册 notifid 规则：清除集合里的 id 必须是 kind 前缀形式
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notifid", func(fl validator.FieldLevel) bool {
			id := fl.Field().String()
			return strings.HasPrefix(id, "msg-") || strings.HasPrefix(id, "conn-")
		})
	}
}

// NewRouter assembles the gin engine: recovery + sentry, gzip, tracing, then
// the authenticated, rate-limited v1 API.
func NewRouter(h *handler.Handler, cfg *config.Config) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Telemetry.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("credlinkd"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", h.Login)

	authed := v1.Group("")
	authed.Use(middleware.Auth(cfg.Auth.JWTSecret))
	authed.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	{
		authed.POST("/inbox/conversations", h.Conversations)
		authed.DELETE("/inbox/conversations/:partner_id", h.DeleteConversation)
		authed.POST("/notifications", h.Notifications)
		authed.POST("/dashboard/summary", h.Summary)
	}
	return r
}
