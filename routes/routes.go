package routes

import (
	checkoutControllers "github.com/adarshalexbalmuchu/Unitech/controllers/checkout"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the public,
// user, checkout, payment, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw checkoutControllers.Gateway, locker checkoutControllers.Locker) {
	// Public catalog routes (no middleware)
	SetupProductRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Checkout routes (JWT-protected)
	SetupCheckoutRoutes(r, db, gw, locker)

	// Payment gateway webhook
	SetupPaymentRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
