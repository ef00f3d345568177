package routes

import (
	checkoutControllers "github.com/adarshalexbalmuchu/Unitech/controllers/checkout"
	"github.com/adarshalexbalmuchu/Unitech/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCheckoutRoutes registers the checkout state machine endpoints.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, gw checkoutControllers.Gateway, locker checkoutControllers.Locker) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.ValidateToken)
	{
		checkout.POST("", checkoutControllers.StartCheckoutHandler(db))
		checkout.GET("/:id", checkoutControllers.GetCheckoutHandler(db))
		checkout.POST("/:id/shipping", checkoutControllers.SubmitShippingHandler(db))
		checkout.POST("/:id/place", checkoutControllers.PlaceOrderHandler(db, gw, locker))
	}
}
