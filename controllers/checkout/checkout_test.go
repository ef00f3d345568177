package checkoutControllers

import (
	"context"
	"errors"
	"testing"

	cartControllers "github.com/adarshalexbalmuchu/Unitech/controllers/cart"
	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.CheckoutSession{},
		&models.Profile{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Category: "speakers", Price: &price}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, userID string, products ...models.Product) {
	t.Helper()
	for _, p := range products {
		require.NoError(t, cartControllers.AddToCart(db, userID, p.ID))
	}
}

func validShipping() ShippingInput {
	return ShippingInput{
		FullName:   "Asha Rao",
		Phone:      "9876543210",
		Email:      "asha@example.com",
		Address:    "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	}
}

// fakeGateway records the checkout request and returns a canned result.
type fakeGateway struct {
	lastRequest GatewayCheckoutRequest
	err         error
}

func (f *fakeGateway) CreateCheckout(req GatewayCheckoutRequest) (*GatewayCheckout, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &GatewayCheckout{PaymentURL: "https://pay.example.com/c/abc", Reference: "gw-ref-1"}, nil
}

// toPaymentState walks a session through shipping into payment.
func toPaymentState(t *testing.T, db *gorm.DB, userID string) *models.CheckoutSession {
	t.Helper()
	session, err := StartCheckout(db, userID)
	require.NoError(t, err)
	session, err = SubmitShipping(db, userID, session.ID, validShipping())
	require.NoError(t, err)
	require.Equal(t, models.CheckoutStatePayment, session.State)
	return session
}

func TestComputeTotals(t *testing.T) {
	// Below the free-shipping threshold.
	got := ComputeTotals(400)
	assert.Equal(t, 50.0, got.ShippingFee)
	assert.Equal(t, 72.0, got.Tax)
	assert.Equal(t, 522.0, got.Total)

	// At the threshold the fee is waived.
	got = ComputeTotals(500)
	assert.Equal(t, 0.0, got.ShippingFee)
	assert.Equal(t, 90.0, got.Tax)
	assert.Equal(t, 590.0, got.Total)

	// Tax rounds to the nearest unit.
	got = ComputeTotals(120.5)
	assert.Equal(t, 22.0, got.Tax)
}

func TestStartCheckoutRejectsEmptyCart(t *testing.T) {
	db := setupTestDB(t)

	_, err := StartCheckout(db, "user-1")
	assert.ErrorIs(t, err, ErrCartEmpty)

	var count int64
	db.Model(&models.CheckoutSession{}).Count(&count)
	assert.Zero(t, count)
}

func TestStartCheckoutPrefillsFromProfile(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	require.NoError(t, db.Create(&models.Profile{
		UserID: "user-1", FullName: "Asha Rao", Phone: "9876543210", City: "Bengaluru",
	}).Error)

	session, err := StartCheckout(db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateShipping, session.State)
	assert.Equal(t, "Asha Rao", session.Shipping.FullName)
	assert.Equal(t, "Bengaluru", session.Shipping.City)
}

func TestSubmitShippingRejectsIncompleteFields(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session, err := StartCheckout(db, "user-1")
	require.NoError(t, err)

	in := validShipping()
	in.Address = ""
	_, err = SubmitShipping(db, "user-1", session.ID, in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please fill in all shipping details", vErr.Message)

	// The state machine stays in shipping.
	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, models.CheckoutStateShipping, stored.State)
}

func TestSubmitShippingRejectsShortPhone(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session, err := StartCheckout(db, "user-1")
	require.NoError(t, err)

	in := validShipping()
	in.Phone = "12345"
	_, err = SubmitShipping(db, "user-1", session.ID, in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please enter a valid phone number", vErr.Message)
}

func TestSubmitShippingFixesTotalsAtPaymentEntry(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session := toPaymentState(t, db, "user-1")
	assert.Equal(t, 300.0, session.Subtotal)
	assert.Equal(t, 50.0, session.ShippingFee)
	assert.Equal(t, 54.0, session.Tax)
	assert.Equal(t, 404.0, session.TotalAmount)

	// A later catalog price change does not move the fixed figure.
	newPrice := 999.0
	require.NoError(t, db.Model(&product).Update("price", newPrice).Error)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, 404.0, stored.TotalAmount)
}

func TestPlaceOrderRequiresPaymentState(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session, err := StartCheckout(db, "user-1")
	require.NoError(t, err)

	_, err = PlaceOrder(db, &fakeGateway{}, NewMemoryLocker(), "user-1", session.ID, "cod")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPlaceOrderCOD(t *testing.T) {
	db := setupTestDB(t)
	speaker := seedProduct(t, db, "Speaker", 300)
	stereo := seedProduct(t, db, "Car Stereo", 250)
	seedCart(t, db, "user-1", speaker, stereo)

	session := toPaymentState(t, db, "user-1")

	result, err := PlaceOrder(db, &fakeGateway{}, NewMemoryLocker(), "user-1", session.ID, "cod")
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Empty(t, result.PaymentURL)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, "id = ?", result.Order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, session.TotalAmount, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Len(t, order.DisplayRef(), 8)

	// Cart cleared, session terminal, profile saved for next time.
	items, err := cartControllers.FetchCart(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, models.CheckoutStateConfirmation, stored.State)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", "user-1").Error)
	assert.Equal(t, "Asha Rao", profile.FullName)
}

func TestPlaceOrderGatewayLeavesOrderPending(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Home Theatre", 600)
	seedCart(t, db, "user-1", product)

	session := toPaymentState(t, db, "user-1")

	gw := &fakeGateway{}
	result, err := PlaceOrder(db, gw, NewMemoryLocker(), "user-1", session.ID, "gateway")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/c/abc", result.PaymentURL)
	assert.Equal(t, session.TotalAmount, gw.lastRequest.Amount)
	assert.Equal(t, result.Order.ID, gw.lastRequest.OrderID)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", result.Order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// The cart survives until the gateway confirms payment.
	items, err := cartControllers.FetchCart(db, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	var stored models.CheckoutSession
	require.NoError(t, db.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, models.CheckoutStatePayment, stored.State)
	assert.Equal(t, order.ID, stored.OrderID)
}

func TestPlaceOrderGatewayFailureKeepsPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session := toPaymentState(t, db, "user-1")

	gw := &fakeGateway{err: errors.New("gateway unreachable")}
	_, err := PlaceOrder(db, gw, NewMemoryLocker(), "user-1", session.ID, "gateway")
	require.Error(t, err)

	// The order-before-payment row stays put for a later retry.
	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", "user-1").Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestPlaceOrderBusyWhenLockHeld(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session := toPaymentState(t, db, "user-1")

	locker := NewMemoryLocker()
	held, err := locker.Acquire(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, held)

	_, err = PlaceOrder(db, &fakeGateway{}, locker, "user-1", session.ID, "cod")
	assert.ErrorIs(t, err, ErrBusy)
}

func TestOrderItemPriceIsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Speaker", 300)
	seedCart(t, db, "user-1", product)

	session := toPaymentState(t, db, "user-1")
	result, err := PlaceOrder(db, &fakeGateway{}, NewMemoryLocker(), "user-1", session.ID, "cod")
	require.NoError(t, err)

	require.NoError(t, db.Model(&product).Update("price", 999.0).Error)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, "id = ?", result.Order.ID).Error)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 300.0, order.Items[0].UnitPrice)
}
