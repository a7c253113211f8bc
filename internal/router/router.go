package router

import (
	"fmt"
	"strings"

	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	adminhandlers "github.com/hanbit-cms/internal/http/handlers/admin"
	publichandlers "github.com/hanbit-cms/internal/http/handlers/public"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 라우터 초기화
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 공개 접근 구간. 인증 없이 열람된다.
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetSiteConfig)
			public.GET("/posts/:type", publicHandler.GetPublishedPosts)
			public.GET("/posts/:type/featured", publicHandler.GetFeaturedPosts)
			public.GET("/posts/:type/:slug", publicHandler.GetPublishedPost)
		}

		admin := apiV1.Group("/admin")
		{
			auth := admin.Group("/auth")
			{
				auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.Login)
				auth.POST("/refresh", adminHandler.Refresh)
			}

			// 인증 필요 구간. 역할은 라우트별로 다시 걸러진다.
			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
			{
				authed.GET("/auth/me", adminHandler.Me)
				authed.PUT("/auth/password", adminHandler.ChangePassword)

				// 열람은 viewer 까지, 작성/수정은 editor 이상, 삭제와 사용자/설정 관리는 admin 전용.
				read := RequireRoles(constants.RoleAdmin, constants.RoleEditor, constants.RoleViewer)
				write := RequireRoles(constants.RoleAdmin, constants.RoleEditor)
				adminOnly := RequireRoles(constants.RoleAdmin)

				authed.GET("/dashboard", read, adminHandler.GetDashboard)
				authed.GET("/dashboard/stream", read, adminHandler.StreamDashboard)

				authed.GET("/posts/:type", read, adminHandler.GetPosts)
				authed.GET("/posts/:type/stats", read, adminHandler.GetPostStats)
				authed.GET("/posts/:type/:id", read, adminHandler.GetPost)
				authed.POST("/posts/:type", write, adminHandler.CreatePost)
				authed.PUT("/posts/:type/:id", write, adminHandler.UpdatePost)
				authed.DELETE("/posts/:type/:id", adminOnly, adminHandler.DeletePost)

				authed.GET("/users", adminOnly, adminHandler.GetUsers)
				authed.GET("/users/:id", adminOnly, adminHandler.GetUser)
				authed.POST("/users", adminOnly, adminHandler.CreateUser)
				authed.PUT("/users/:id", adminOnly, adminHandler.UpdateUser)
				authed.DELETE("/users/:id", adminOnly, adminHandler.DeleteUser)

				authed.GET("/settings/site", read, adminHandler.GetSiteConfig)
				authed.PUT("/settings/site", adminOnly, adminHandler.UpdateSiteConfig)
			}
		}
	}

	return r
}
