package checkoutControllers

import (
	"errors"
	"log"
	"net/http"

	orderControllers "github.com/adarshalexbalmuchu/Unitech/controllers/order"
	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Webhook event names the gateway reports. Exactly one arrives per
// payment attempt.
const (
	EventPaymentPaid      = "payment.paid"
	EventPaymentCancelled = "payment.cancelled"
	EventPaymentFailed    = "payment.failed"
)

var ErrOrderNotFound = errors.New("order not found")

type WebhookRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	Event     string `json:"event" binding:"required"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

// HandleWebhook reconciles an order with the gateway's outcome. The
// order row was created before the payment started, so there is always a
// target to update. Returns the notice text surfaced for the outcome.
func HandleWebhook(db *gorm.DB, req WebhookRequest) (string, error) {
	var order models.Order
	err := db.Where("id = ? OR order_ref = ?", req.OrderID, req.OrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}

	// A duplicate delivery for an already-settled order is acknowledged
	// without further writes.
	if order.Status != models.OrderStatusPending {
		return "Order already processed", nil
	}

	switch req.Event {
	case EventPaymentPaid:
		if err := db.Model(&order).Updates(map[string]interface{}{
			"status":     models.OrderStatusConfirmed,
			"payment_id": req.PaymentID,
		}).Error; err != nil {
			return "", err
		}

		var session models.CheckoutSession
		if err := db.First(&session, "order_id = ?", order.ID).Error; err != nil {
			log.Printf("no checkout session for order %s: %v", order.ID, err)
			return "Payment successful! Order placed.", nil
		}
		if err := FinalizeOrder(db, &order, &session); err != nil {
			log.Printf("post-payment steps failed for order %s: %v", order.ID, err)
			return "Payment successful but order update failed. Contact support.", nil
		}

		order.Status = models.OrderStatusConfirmed
		orderControllers.BroadcastNewOrder(order)
		return "Payment successful! Order placed.", nil

	case EventPaymentCancelled:
		if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return "", err
		}
		return "Payment cancelled", nil

	case EventPaymentFailed:
		if err := db.Model(&order).Updates(map[string]interface{}{
			"status":         models.OrderStatusFailed,
			"failure_reason": req.Reason,
		}).Error; err != nil {
			return "", err
		}
		return "Payment failed: " + req.Reason, nil

	default:
		return "", &ValidationError{Message: "unknown webhook event: " + req.Event}
	}
}

// POST /payment/webhook
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload: " + err.Error()})
			return
		}

		notice, err := HandleWebhook(db, req)
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": notice})
	}
}
