package routes

import (
	"quickbite-api/handlers"
	"quickbite-api/middleware"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full REST surface on the given engine.
func SetupRoutes(r *gin.Engine) {
	partnerOrAdmin := middleware.RoleRequired(models.RoleRestaurantPartner, models.RoleAdmin)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	// ── Auth ───────────────────────────────────────────────────────
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/send-otp", handlers.SendOTP)
		auth.POST("/verify-otp", handlers.VerifyOTP)
		auth.POST("/refresh-token", handlers.RefreshToken)

		protected := auth.Group("", middleware.AuthRequired())
		{
			protected.GET("/me", handlers.GetMe)
			protected.PUT("/profile", handlers.UpdateProfile)
			protected.PUT("/change-password", handlers.ChangePassword)
			protected.POST("/logout", handlers.Logout)
		}
	}

	// ── Restaurants ────────────────────────────────────────────────
	restaurants := r.Group("/api/restaurants")
	{
		restaurants.GET("", handlers.ListRestaurants)
		restaurants.GET("/:id", handlers.GetRestaurant)

		restaurants.POST("", middleware.AuthRequired(), partnerOrAdmin, handlers.CreateRestaurant)
		restaurants.GET("/my/restaurant", middleware.AuthRequired(), partnerOrAdmin, handlers.GetMyRestaurant)
		restaurants.PUT("/:id", middleware.AuthRequired(), partnerOrAdmin, handlers.UpdateRestaurant)
		restaurants.PATCH("/:id/toggle-status", middleware.AuthRequired(), partnerOrAdmin, handlers.ToggleRestaurantStatus)

		restaurants.PATCH("/:id/approve", middleware.AuthRequired(), adminOnly, handlers.ApproveRestaurant)
		restaurants.DELETE("/:id", middleware.AuthRequired(), adminOnly, handlers.DeleteRestaurant)
	}

	// ── Menu ───────────────────────────────────────────────────────
	menu := r.Group("/api/menu")
	{
		menu.GET("/restaurant/:restaurantId", handlers.GetMenuByRestaurant)
		menu.GET("/:id", handlers.GetMenuItem)

		menu.POST("", middleware.AuthRequired(), partnerOrAdmin, handlers.CreateMenuItem)
		menu.GET("/my/menu", middleware.AuthRequired(), partnerOrAdmin, handlers.GetMyMenu)
		menu.PUT("/:id", middleware.AuthRequired(), partnerOrAdmin, handlers.UpdateMenuItem)
		menu.DELETE("/:id", middleware.AuthRequired(), partnerOrAdmin, handlers.DeleteMenuItem)
		menu.PATCH("/:id/toggle-availability", middleware.AuthRequired(), partnerOrAdmin, handlers.ToggleAvailability)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/api/orders", middleware.AuthRequired())
	{
		orders.POST("", middleware.RoleRequired(models.RoleCustomer), handlers.CreateOrder)
		orders.GET("/my-orders", handlers.GetMyOrders)
		orders.GET("/restaurant/orders", partnerOrAdmin, handlers.GetRestaurantOrders)
		orders.GET("/:id", handlers.GetOrder)
		orders.PATCH("/:id/status",
			middleware.RoleRequired(models.RoleRestaurantPartner, models.RoleDeliveryPartner, models.RoleAdmin),
			handlers.UpdateOrderStatus)
		orders.POST("/:id/cancel", handlers.CancelOrder)
		orders.GET("", middleware.RoleRequired(models.RoleAdmin, models.RoleSupportAdmin), handlers.AdminGetAllOrders)
	}

	// ── Addresses ──────────────────────────────────────────────────
	addresses := r.Group("/api/addresses", middleware.AuthRequired())
	{
		addresses.POST("", handlers.CreateAddress)
		addresses.GET("", handlers.GetMyAddresses)
		addresses.GET("/:id", handlers.GetAddress)
		addresses.PUT("/:id", handlers.UpdateAddress)
		addresses.DELETE("/:id", handlers.DeleteAddress)
		addresses.PATCH("/:id/set-default", handlers.SetDefaultAddress)
	}

	// ── Reviews ────────────────────────────────────────────────────
	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/restaurant/:restaurantId", handlers.GetRestaurantReviews)
		reviews.POST("", middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer), handlers.CreateReview)
		reviews.PUT("/:id/response", middleware.AuthRequired(), partnerOrAdmin, handlers.RespondToReview)
	}
}
