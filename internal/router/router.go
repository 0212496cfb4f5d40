package router

import (
	"fmt"
	"strings"

	"github.com/palengke/storefront/internal/cache"
	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/constants"
	adminhandlers "github.com/palengke/storefront/internal/http/handlers/admin"
	publichandlers "github.com/palengke/storefront/internal/http/handlers/public"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes onto a gin engine.
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
	otpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp", redisPrefix),
		WindowSeconds: cfg.Security.OtpRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OtpRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.OtpRateLimit.BlockSeconds,
		Message:       "too many verification code requests, try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded product images.
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/request-otp", RateLimitMiddleware(redisClient, otpRule, KeyByIPAndJSONField("email")), publicHandler.RequestOtp)
			auth.POST("/verify-otp", publicHandler.VerifyOtp)
		}

		user := apiV1.Group("")
		user.Use(AuthMiddleware(c.AuthService))
		{
			user.GET("/me", publicHandler.GetCurrentUser)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/return", publicHandler.RequestOrderReturn)
			user.POST("/orders/:id/received", publicHandler.ConfirmOrderReceived)
		}

		admin := apiV1.Group("/admin")
		admin.Use(AuthMiddleware(c.AuthService), AdminOnlyMiddleware())
		{
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)

			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateAdminUser)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
