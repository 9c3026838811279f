package router

import (
	"fmt"
	"strings"

	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/config"
	"github.com/mallhub-next/internal/constants"
	adminhandlers "github.com/mallhub-next/internal/http/handlers/admin"
	publichandlers "github.com/mallhub-next/internal/http/handlers/public"
	tenanthandlers "github.com/mallhub-next/internal/http/handlers/tenant"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按买家/商户/管理端分组）
	publicHandler := publichandlers.New(c)
	tenantHandler := tenanthandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mh"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/shops", publicHandler.GetShops)

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 会话购物车（仅依赖 X-Session-ID，无需登录）
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PUT("/items/:product_id", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
		}

		// 登录后接口（JWT + RBAC）
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.POST("/auth/logout", publicHandler.Logout)
			authorized.PUT("/auth/password", publicHandler.ChangePassword)
			authorized.GET("/auth/me", publicHandler.Me)

			authorized.GET("/checkout/quote", publicHandler.GetCheckoutQuote)
			authorized.POST("/checkout", publicHandler.SubmitCheckout)

			authorized.GET("/orders", publicHandler.GetOrders)
			authorized.GET("/orders/:id", publicHandler.GetOrder)

			authorized.GET("/wishlist", publicHandler.GetWishlist)
			authorized.POST("/wishlist", publicHandler.AddWishlistItem)
			authorized.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)

			authorized.GET("/loyalty", publicHandler.GetLoyalty)

			// 商户接口
			tenantGroup := authorized.Group("/tenant")
			tenantGroup.Use(RequireRoleMiddleware(constants.RoleTenant))
			{
				tenantGroup.GET("/profile", tenantHandler.GetProfile)
				tenantGroup.PUT("/profile", tenantHandler.UpdateProfile)
				tenantGroup.GET("/stats", tenantHandler.GetStats)
				tenantGroup.GET("/products", tenantHandler.GetProducts)
				tenantGroup.POST("/products", tenantHandler.CreateProduct)
				tenantGroup.PUT("/products/:id", tenantHandler.UpdateProduct)
				tenantGroup.DELETE("/products/:id", tenantHandler.DeleteProduct)
				tenantGroup.GET("/orders", tenantHandler.GetOrders)
				tenantGroup.PATCH("/orders/:id/status", tenantHandler.UpdateOrderStatus)
			}

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(RequireRoleMiddleware(constants.RoleAdmin))
			{
				adminGroup.GET("/overview", adminHandler.GetOverview)
				adminGroup.GET("/stats/shop-revenue", adminHandler.GetShopRevenue)
				adminGroup.GET("/stats/monthly-revenue", adminHandler.GetMonthlyRevenue)
				adminGroup.GET("/stats/category-distribution", adminHandler.GetCategoryDistribution)
				adminGroup.GET("/stats/weekday-traffic", adminHandler.GetWeekdayTraffic)
				adminGroup.GET("/tenants", adminHandler.GetTenants)
				adminGroup.PATCH("/tenants/:id/approval", adminHandler.ToggleTenantApproval)
				adminGroup.GET("/users", adminHandler.GetUsers)
				adminGroup.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)
				adminGroup.GET("/user-login-logs", adminHandler.GetUserLoginLogs)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
