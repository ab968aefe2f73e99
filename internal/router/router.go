package router

import (
	"strings"

	"github.com/vitrine-next/internal/cache"
	"github.com/vitrine-next/internal/config"
	publichandlers "github.com/vitrine-next/internal/http/handlers/public"
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = cache.Prefix()
	}
	redisClient := cache.Client()
	sessionRule := newRateLimitRule(redisPrefix, "session", cfg.RateLimit.Session)
	checkoutRule := newRateLimitRule(redisPrefix, "checkout", cfg.RateLimit.Checkout)

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, response.Message("error.route_not_found"))
	})
	r.GET("/healthz", publicHandler.Healthz)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.POST("/session", RateLimitMiddleware(redisClient, sessionRule, KeyByIP), publicHandler.CreateSession)
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProduct)

		// 会话接口
		authorized := apiV1.Group("")
		authorized.Use(SessionAuthMiddleware(c.SessionService))
		{
			authorized.GET("/cart", publicHandler.GetCart)
			authorized.POST("/cart/items", publicHandler.AddCartItem)
			authorized.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			authorized.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			authorized.DELETE("/cart", publicHandler.ClearCart)
			authorized.POST("/cart/close", publicHandler.CloseCart)

			authorized.GET("/wishlist", publicHandler.GetWishlist)
			authorized.POST("/wishlist/items", publicHandler.AddWishlistItem)
			authorized.DELETE("/wishlist/items/:product_id", publicHandler.RemoveWishlistItem)
			authorized.POST("/wishlist/items/:product_id/toggle", publicHandler.ToggleWishlistItem)
			authorized.POST("/wishlist/items/:product_id/move-to-cart", publicHandler.MoveWishlistItemToCart)

			authorized.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByOwner), publicHandler.Checkout)
			authorized.GET("/orders", publicHandler.ListOrders)
			authorized.GET("/orders/:order_no", publicHandler.GetOrder)
		}
	}

	return r
}
