package checkoutControllers

import (
	"testing"

	cartControllers "github.com/adarshalexbalmuchu/Unitech/controllers/cart"
	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// placeGatewayOrder seeds a cart, runs the flow to a pending gateway
// order, and returns the order.
func placeGatewayOrder(t *testing.T, db *gorm.DB, userID string) *models.Order {
	t.Helper()
	product := seedProduct(t, db, "Amplifier", 450)
	seedCart(t, db, userID, product)
	session := toPaymentState(t, db, userID)

	result, err := PlaceOrder(db, &fakeGateway{}, NewMemoryLocker(), userID, session.ID, "gateway")
	require.NoError(t, err)
	return result.Order
}

func TestWebhookPaidConfirmsOrder(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	notice, err := HandleWebhook(db, WebhookRequest{
		OrderID:   order.ID,
		Event:     EventPaymentPaid,
		PaymentID: "pay_123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment successful! Order placed.", notice)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
	assert.Equal(t, "pay_123", stored.PaymentID)

	// Post-payment steps ran: cart emptied, session closed out.
	items, err := cartControllers.FetchCart(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	var session models.CheckoutSession
	require.NoError(t, db.First(&session, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.CheckoutStateConfirmation, session.State)
}

func TestWebhookPaidResolvesByOrderRef(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	_, err := HandleWebhook(db, WebhookRequest{
		OrderID: order.OrderRef,
		Event:   EventPaymentPaid,
	})
	require.NoError(t, err)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
}

func TestWebhookFailedRecordsReasonAndKeepsPaymentStep(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	notice, err := HandleWebhook(db, WebhookRequest{
		OrderID: order.ID,
		Event:   EventPaymentFailed,
		Reason:  "insufficient funds",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment failed: insufficient funds", notice)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusFailed, stored.Status)
	assert.Equal(t, "insufficient funds", stored.FailureReason)

	// The buyer stays on the payment step to retry; the cart survives.
	var session models.CheckoutSession
	require.NoError(t, db.First(&session, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.CheckoutStatePayment, session.State)

	items, err := cartControllers.FetchCart(db, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWebhookCancelled(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	notice, err := HandleWebhook(db, WebhookRequest{
		OrderID: order.ID,
		Event:   EventPaymentCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment cancelled", notice)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
}

func TestWebhookDuplicateDeliveryIsAcknowledgedOnce(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	_, err := HandleWebhook(db, WebhookRequest{OrderID: order.ID, Event: EventPaymentPaid, PaymentID: "pay_1"})
	require.NoError(t, err)

	notice, err := HandleWebhook(db, WebhookRequest{OrderID: order.ID, Event: EventPaymentPaid, PaymentID: "pay_2"})
	require.NoError(t, err)
	assert.Equal(t, "Order already processed", notice)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, "pay_1", stored.PaymentID)
}

func TestWebhookUnknownOrder(t *testing.T) {
	db := setupTestDB(t)

	_, err := HandleWebhook(db, WebhookRequest{OrderID: "nope", Event: EventPaymentPaid})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestWebhookUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	order := placeGatewayOrder(t, db, "user-1")

	_, err := HandleWebhook(db, WebhookRequest{OrderID: order.ID, Event: "payment.refunded"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
