// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/proglide/admin-console/internal/config"
	"github.com/proglide/admin-console/internal/handlers"
	"github.com/proglide/admin-console/internal/middleware"
	"github.com/proglide/admin-console/internal/search"
	"github.com/proglide/admin-console/internal/services"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/workspace"
)

// Upstream is everything the console needs from the remote API.
type Upstream interface {
	services.ProductAPI
	services.UserAPI
}

// Deps are the long-lived objects shared with housekeeping.
type Deps struct {
	Upstream     Upstream
	Sessions     *session.Manager
	Workspaces   *workspace.Registry
	LoginLimiter *middleware.RateLimiter
}

func Initialize(cfg *config.Config, deps Deps) *gin.Engine {
	sortLang, err := language.Parse(cfg.I18n.SortLocale)
	if err != nil {
		sortLang = language.English
	}

	// Initialize services
	authService := services.NewAuthService(deps.Sessions)
	inventoryService := services.NewInventoryService(deps.Upstream, deps.Workspaces, deps.Sessions, search.NewEngine(sortLang))
	userService := services.NewUserService(deps.Upstream)
	dashboardService := services.NewDashboardService(deps.Upstream, deps.Upstream)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(inventoryService)
	userHandler := handlers.NewUserHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = middleware.PerMinute(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
			auth.POST("/logout", middleware.SessionRequired(authService), authHandler.Logout)
			auth.GET("/session", middleware.SessionRequired(authService), authHandler.Session)
		}

		protected := v1.Group("")
		protected.Use(middleware.SessionRequired(authService))

		// Inventory routes
		protected.GET("/categories", productHandler.GetCategories)
		categories := protected.Group("/categories/:category")
		{
			categories.GET("/schema", productHandler.GetSchema)
			categories.GET("/products", productHandler.GetProducts)
			categories.POST("/products", productHandler.CreateProduct)
			categories.PUT("/products/:id", productHandler.UpdateProduct)
			categories.DELETE("/products/:id", productHandler.DeleteProduct)
			categories.POST("/devices", productHandler.AddDevice)
			categories.POST("/devices/remove", productHandler.RemoveDevice)
		}

		// User routes
		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/subscriptions", userHandler.GetSubscriptions)
		}

		// Dashboard routes
		protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	}

	return r
}
