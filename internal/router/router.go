package router

import (
	"fmt"
	"strings"

	"github.com/petpaw-pos/internal/cache"
	"github.com/petpaw-pos/internal/config"
	poshandlers "github.com/petpaw-pos/internal/http/handlers/pos"
	"github.com/petpaw-pos/internal/logger"
	"github.com/petpaw-pos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	posHandler := poshandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "petpaw"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "登录尝试过于频繁，请稍后再试",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口（无需登录）
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), posHandler.Login)
			auth.GET("/captcha/image", posHandler.GetImageCaptcha)
		}

		// 收银台接口（需鉴权）
		pos := apiV1.Group("")
		pos.Use(CashierJWTAuthMiddleware(cfg.JWT.SecretKey, c.CashierRepo))
		{
			pos.GET("/me", posHandler.GetProfile)
			pos.PUT("/me/password", posHandler.UpdatePassword)
			pos.POST("/auth/logout", posHandler.Logout)

			// 商品目录
			pos.GET("/catalog", posHandler.GetCatalog)
			pos.GET("/products/:id", posHandler.GetProduct)
			pos.GET("/products/by-sku/:sku", posHandler.GetProductBySKU)
			pos.GET("/categories", posHandler.GetCategories)

			// 购物车
			pos.GET("/cart", posHandler.GetCart)
			pos.POST("/cart/items", posHandler.AddCartItem)
			pos.PUT("/cart/items", posHandler.UpsertCartItem)
			pos.DELETE("/cart/items/:product_id", posHandler.DeleteCartItem)
			pos.DELETE("/cart", posHandler.ClearCart)

			// 结账
			pos.POST("/checkout", posHandler.Checkout)

			// 交易历史
			pos.GET("/transactions", posHandler.GetTransactions)
			pos.GET("/transactions/:id", posHandler.GetTransaction)
			pos.GET("/transactions/by-no/:transaction_no", posHandler.GetTransactionByNo)
			pos.DELETE("/transactions/:id", posHandler.DeleteTransaction)

			// 商品与分类管理
			pos.GET("/admin/products", posHandler.GetAdminProducts)
			pos.GET("/admin/products/low-stock", posHandler.GetLowStockProducts)
			pos.POST("/admin/products", posHandler.CreateProduct)
			pos.PUT("/admin/products/:id", posHandler.UpdateProduct)
			pos.DELETE("/admin/products/:id", posHandler.DeleteProduct)
			pos.POST("/admin/categories", posHandler.CreateCategory)
			pos.PUT("/admin/categories/:id", posHandler.UpdateCategory)
			pos.DELETE("/admin/categories/:id", posHandler.DeleteCategory)

			// 店铺设置
			pos.GET("/settings", posHandler.GetSettings)
			pos.PUT("/settings", posHandler.UpdateSetting)

			// 仪表盘
			pos.GET("/dashboard/overview", posHandler.GetDashboardOverview)
			pos.GET("/dashboard/trends", posHandler.GetDashboardTrends)
			pos.GET("/dashboard/rankings", posHandler.GetDashboardRankings)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
