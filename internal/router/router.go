package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/backend/internal/api"
	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
)

// Handlers bundles everything SetupRouter wires into the route tree.
type Handlers struct {
	Auth    *api.AuthHandler
	Profile *api.ProfileHandler
	Menu    *api.MenuHandler
	Cart    *api.CartHandler
	Order   *api.OrderHandler
	Item    *api.ItemHandler
	Admin   *api.AdminHandler

	TokenValidator middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	if h.RateLimiter != nil {
		protected.Use(h.RateLimiter.RateLimitMiddleware())
	}
	{
		// Customer surfaces: a restaurant session landing here is pushed
		// back to its dashboard rather than silently served.
		customer := protected.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		{
			profile := customer.Group("/profile")
			{
				profile.GET("/dietary", h.Profile.GetDietary)
				profile.PUT("/dietary", h.Profile.PutDietary)
			}

			restaurants := customer.Group("/restaurants")
			{
				restaurants.GET("", h.Menu.ListRestaurants)
				restaurants.GET("/:id/menu", h.Menu.GetMenu)
			}

			cart := customer.Group("/cart")
			{
				cart.GET("", h.Cart.Get)
				cart.POST("/items", h.Cart.AddItem)
				cart.POST("/items/:id/decrease", h.Cart.DecreaseItem)
				cart.DELETE("", h.Cart.Clear)
			}

			orders := customer.Group("/orders")
			{
				orders.POST("", h.Order.Place)
				orders.GET("", h.Order.ListMine)
				orders.GET("/active", h.Order.Active)
			}
		}

		dashboard := protected.Group("/restaurant")
		dashboard.Use(middleware.RequireRole(models.RoleRestaurant))
		{
			dashboard.GET("/orders", h.Order.ListForRestaurant)
			dashboard.GET("/orders/stream", h.Order.Stream)
			dashboard.POST("/orders/:id/accept", h.Order.Accept)
			dashboard.POST("/orders/:id/complete", h.Order.Complete)

			dashboard.GET("/items", h.Item.List)
			dashboard.POST("/items", h.Item.Create)
			dashboard.POST("/items/:id/photo", h.Item.UploadPhoto)
			dashboard.POST("/items/classify", h.Item.Classify)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/restaurants", h.Admin.CreateRestaurant)
		}
	}

	return router
}
