package routes

import (
	checkoutControllers "github.com/adarshalexbalmuchu/Unitech/controllers/checkout"
	"github.com/adarshalexbalmuchu/Unitech/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPaymentRoutes registers the gateway callback endpoint.
// Middleware handles sandbox/prod signature verification.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		payment.POST("/webhook",
			middleware.GatewayWebhookAuth(),
			checkoutControllers.WebhookHandler(db),
		)
	}
}
