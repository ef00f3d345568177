package routes

import (
	cartControllers "github.com/adarshalexbalmuchu/Unitech/controllers/cart"
	orderControllers "github.com/adarshalexbalmuchu/Unitech/controllers/order"
	profileControllers "github.com/adarshalexbalmuchu/Unitech/controllers/profile"
	wishlistControllers "github.com/adarshalexbalmuchu/Unitech/controllers/wishlist"
	"github.com/adarshalexbalmuchu/Unitech/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT
// middleware; every handler is scoped to the authenticated user id.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("", cartControllers.AddToCartHandler(db))
			cartGroup.PUT("/:id", cartControllers.UpdateQuantityHandler(db))
			cartGroup.DELETE("/:id", cartControllers.RemoveFromCartHandler(db))
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/toggle", wishlistControllers.ToggleWishlistHandler(db))
		}

		// ──────────────── Profile ────────────────
		userGroup.GET("/profile", profileControllers.GetProfile(db))
		userGroup.PUT("/profile", profileControllers.UpdateProfile(db))

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
	}
}
