package router

import (
	"propman/internal/handlers"
	"propman/internal/metrics"
	"propman/internal/middleware"
	"propman/internal/services"
	"propman/pkg/config"
	"propman/pkg/jwt"
	"propman/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *gorm.DB, store session.Store) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(metrics.Middleware())
	router.Use(middleware.SetupCORS(cfg))

	router.GET("/metrics", metrics.Handler())

	registerRoutes(router, cfg, db, store)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, cfg *config.Config, db *gorm.DB, store session.Store) {
	jwtManager := jwt.NewJWTManagerFromConfig(cfg)

	userService := services.NewUserService(db)
	propertyService := services.NewPropertyService(db)
	tenantService := services.NewTenantService(db)
	leaseService := services.NewLeaseService(db)

	auth := middleware.NewAuthMiddleware(userService, jwtManager, store)

	api := router.Group("/api/v1")
	{
		api.GET("/health", handlers.NewSystemHandler(db).Health)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService, jwtManager, store)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", auth.RequireLogin(), authHandler.Logout)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 以下路由均需登录
		protected := api.Group("", auth.RequireLogin())

		propertyHandler := handlers.NewPropertyHandler(propertyService, leaseService)
		properties := protected.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.GetByID)
			properties.PUT("/:id", propertyHandler.Update)
			properties.DELETE("/:id", propertyHandler.Delete)
			properties.GET("/:id/leases", propertyHandler.Leases)
			properties.GET("/:id/active-lease", propertyHandler.ActiveLease)
		}

		tenantHandler := handlers.NewTenantHandler(tenantService, leaseService)
		tenants := protected.Group("/tenants")
		{
			tenants.GET("", tenantHandler.List)
			tenants.POST("", tenantHandler.Create)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", tenantHandler.Update)
			tenants.DELETE("/:id", tenantHandler.Delete)
			tenants.GET("/:id/leases", tenantHandler.Leases)
		}

		leaseHandler := handlers.NewLeaseHandler(leaseService)
		leases := protected.Group("/leases")
		{
			leases.POST("", leaseHandler.Create)
			leases.GET("/statuses", leaseHandler.Statuses)
			leases.GET("/:id", leaseHandler.GetByID)
			leases.PUT("/:id", leaseHandler.Update)
			leases.DELETE("/:id", leaseHandler.Delete)
		}
	}
}
