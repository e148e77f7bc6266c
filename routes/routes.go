package routes

import (
	"time"

	"mandorpro-backend/config"
	"mandorpro-backend/controllers"
	"mandorpro-backend/middleware"
	"mandorpro-backend/models"
	"mandorpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	rateLimiter := middleware.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := middleware.Cache(cacheStore, cacheTTL)

	// Marketing site endpoints: no auth, cached
	public := r.Group("/public")
	public.Use(rateLimiter)
	{
		public.GET("/services", caching, controllers.GetPublicServices)
		public.GET("/portfolio", caching, controllers.GetPortfolio)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	admin := utils.RequireRole(models.RoleAdmin)
	staff := utils.RequireRole(models.RoleAdmin, models.RoleMandor)

	api := r.Group("/api")
	api.Use(rateLimiter, utils.AuthMiddleware())
	{
		// Jasa catalog
		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.POST("", admin, controllers.CreateService)
			services.PUT("/:id", admin, controllers.UpdateService)
			services.DELETE("/:id", admin, controllers.DeleteService)
		}

		// Mandor roster
		mandors := api.Group("/mandors")
		{
			mandors.GET("", staff, controllers.GetMandors)
			mandors.GET("/:id", staff, controllers.GetMandor)
			mandors.POST("", admin, controllers.CreateMandor)
			mandors.PUT("/:id", admin, controllers.UpdateMandor)
			mandors.DELETE("/:id", admin, controllers.DeleteMandor)
		}

		// Orders
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", admin, controllers.UpdateOrder)
			orders.DELETE("/:id", admin, controllers.DeleteOrder)
		}

		// Scheduling calendar
		schedules := api.Group("/schedules")
		schedules.Use(staff)
		{
			schedules.GET("", controllers.GetSchedules)
			schedules.GET("/calendar", controllers.GetCalendar)
			schedules.GET("/agenda", controllers.GetAgenda)
			schedules.POST("", utils.RequireRole(models.RoleAdmin), controllers.CreateSchedule)
			schedules.PUT("/:id", utils.RequireRole(models.RoleAdmin), controllers.UpdateSchedule)
			schedules.DELETE("/:id", utils.RequireRole(models.RoleAdmin), controllers.DeleteSchedule)
		}

		// Budget proposals
		rab := api.Group("/rab")
		rab.Use(staff)
		{
			rab.POST("", controllers.CreateRab)
			rab.GET("", controllers.GetRabs)
			rab.GET("/:id", controllers.GetRab)
			rab.PUT("/:id", controllers.UpdateRab)
			rab.PUT("/:id/status", controllers.UpdateRabStatus)
			rab.DELETE("/:id", admin, controllers.DeleteRab)
		}

		// Portfolio gallery
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("", controllers.GetPortfolio)
			portfolio.POST("", admin, controllers.CreatePortfolio)
			portfolio.PUT("/:id", admin, controllers.UpdatePortfolio)
			portfolio.DELETE("/:id", admin, controllers.DeletePortfolio)
		}

		// Browser push for mandors
		push := api.Group("/push")
		push.Use(utils.RequireRole(models.RoleMandor))
		{
			push.PUT("/subscriptions", controllers.PutPushSubscription)
			push.DELETE("/subscriptions", controllers.DeletePushSubscription)
		}

		api.POST("/uploads", staff, controllers.UploadFile)

		api.GET("/dashboard", admin, controllers.GetDashboardOverview)
	}

	return r
}
