package checkoutControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	cartControllers "github.com/adarshalexbalmuchu/Unitech/controllers/cart"
	orderControllers "github.com/adarshalexbalmuchu/Unitech/controllers/order"
	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrInvalidState    = errors.New("invalid checkout state for this operation")
	ErrBusy            = errors.New("another order placement is in progress")
)

// ValidationError carries the field-level notice shown to the buyer.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ShippingInput struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type PlaceOrderInput struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PlaceOrderResult is what order placement hands back to the caller:
// the always-present order plus, on the gateway path, the URL the buyer
// must be sent to.
type PlaceOrderResult struct {
	Session    *models.CheckoutSession
	Order      *models.Order
	PaymentURL string
}

// -------- Helpers --------

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// ValidateShipping enforces the shipping-step guard: all fields present
// and a plausible phone number. The returned error text is the notice.
func ValidateShipping(in ShippingInput) error {
	if in.FullName == "" || in.Phone == "" || in.Address == "" ||
		in.City == "" || in.State == "" || in.PostalCode == "" {
		return &ValidationError{Message: "Please fill in all shipping details"}
	}
	if len(in.Phone) < 10 {
		return &ValidationError{Message: "Please enter a valid phone number"}
	}
	return nil
}

func loadSession(db *gorm.DB, userID, sessionID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// -------- Core Logic --------

// StartCheckout opens a session in the shipping state. The cart-empty
// guard runs against the store at call time, never a stale snapshot, so
// a cart still being loaded client-side cannot slip through. Shipping
// fields prefill from the user's saved profile.
func StartCheckout(db *gorm.DB, userID string) (*models.CheckoutSession, error) {
	items, err := cartControllers.FetchCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	session := models.CheckoutSession{
		UserID: userID,
		State:  models.CheckoutStateShipping,
	}

	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err == nil {
		session.Shipping = models.ShippingInfo{
			FullName:   profile.FullName,
			Phone:      profile.Phone,
			Email:      profile.Email,
			Address:    profile.Address,
			City:       profile.City,
			State:      profile.State,
			PostalCode: profile.PostalCode,
		}
	}

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// SubmitShipping validates the shipping step and advances the session to
// the payment state. Totals are fixed here, at payment entry, from the
// cart as it stands; they are not recomputed later in the flow.
func SubmitShipping(db *gorm.DB, userID, sessionID string, in ShippingInput) (*models.CheckoutSession, error) {
	session, err := loadSession(db, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.CheckoutStateConfirmation {
		return nil, ErrInvalidState
	}

	if err := ValidateShipping(in); err != nil {
		return nil, err
	}

	items, err := cartControllers.FetchCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	totals := ComputeTotals(models.CartTotal(items))

	session.Shipping = models.ShippingInfo(in)
	session.Subtotal = totals.Subtotal
	session.ShippingFee = totals.ShippingFee
	session.Tax = totals.Tax
	session.TotalAmount = totals.Total
	session.State = models.CheckoutStatePayment

	if err := db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// PlaceOrder drives the payment-state transition. The order and its
// items are created in one transaction before any payment is attempted,
// so a gateway callback always has a target row to update.
//
// Pay-on-delivery confirms immediately and runs the post-order steps;
// the gateway path leaves the order pending and returns the hosted
// payment URL, with the webhook finishing the job.
func PlaceOrder(db *gorm.DB, gw Gateway, locker Locker, userID, sessionID, method string) (*PlaceOrderResult, error) {
	session, err := loadSession(db, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.CheckoutStatePayment {
		return nil, ErrInvalidState
	}

	var paymentMethod models.PaymentMethod
	switch method {
	case string(models.PaymentMethodGateway):
		paymentMethod = models.PaymentMethodGateway
	case string(models.PaymentMethodCOD):
		paymentMethod = models.PaymentMethodCOD
	default:
		return nil, &ValidationError{Message: "Unknown payment method"}
	}

	ctx := context.Background()
	acquired, err := locker.Acquire(ctx, userID)
	if err != nil || !acquired {
		return nil, ErrBusy
	}
	defer locker.Release(ctx, userID)

	items, err := cartControllers.FetchCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	status := models.OrderStatusPending
	if paymentMethod == models.PaymentMethodCOD {
		status = models.OrderStatusConfirmed
	}

	order := models.Order{
		UserID:        userID,
		OrderRef:      generateOrderRef(),
		Subtotal:      session.Subtotal,
		ShippingFee:   session.ShippingFee,
		Tax:           session.Tax,
		TotalAmount:   session.TotalAmount,
		Status:        status,
		PaymentMethod: paymentMethod,
		ShippingName:  session.Shipping.FullName,
		ShippingPhone: session.Shipping.Phone,
		ShippingEmail: session.Shipping.Email,
		ShippingAddr:  session.Shipping.ComposedAddress(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.Product.Price == nil {
				return &ValidationError{Message: "Cart contains a price-on-request product"}
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				UnitPrice: *item.Product.Price,
				Quantity:  item.Quantity,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		session.OrderID = order.ID
		session.PaymentMethod = paymentMethod
		return tx.Save(session).Error
	})
	if err != nil {
		return nil, err
	}

	if paymentMethod == models.PaymentMethodCOD {
		if err := FinalizeOrder(db, &order, session); err != nil {
			return nil, err
		}
		orderControllers.BroadcastNewOrder(order)
		return &PlaceOrderResult{Session: session, Order: &order}, nil
	}

	checkout, err := gw.CreateCheckout(GatewayCheckoutRequest{
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
		Currency:    "INR",
		Description: "Order #" + order.DisplayRef(),
		Name:        session.Shipping.FullName,
		Email:       session.Shipping.Email,
		Phone:       session.Shipping.Phone,
	})
	if err != nil {
		// The pending order stays put; a later webhook or retry can
		// still resolve it.
		return nil, err
	}

	return &PlaceOrderResult{Session: session, Order: &order, PaymentURL: checkout.PaymentURL}, nil
}

// FinalizeOrder runs the post-payment steps shared by pay-on-delivery
// and a successful gateway callback: save the shipping details for next
// time, empty the cart, and close out the session. Each step is a
// separate write; the order itself is already placed and is not unwound
// if one of them fails.
func FinalizeOrder(db *gorm.DB, order *models.Order, session *models.CheckoutSession) error {
	profile := models.Profile{
		UserID:     order.UserID,
		FullName:   session.Shipping.FullName,
		Phone:      session.Shipping.Phone,
		Email:      session.Shipping.Email,
		Address:    session.Shipping.Address,
		City:       session.Shipping.City,
		State:      session.Shipping.State,
		PostalCode: session.Shipping.PostalCode,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&profile).Error; err != nil {
		return err
	}

	if err := cartControllers.ClearCart(db, order.UserID); err != nil {
		return err
	}

	session.State = models.CheckoutStateConfirmation
	return db.Save(session).Error
}

// -------- Handlers --------

// POST /checkout
func StartCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		session, err := StartCheckout(db, userID)
		if err != nil {
			if errors.Is(err, ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Add some products first!"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// GET /checkout/:id
func GetCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		session, err := loadSession(db, userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checkout session"})
			}
			return
		}

		resp := gin.H{"session": session}
		if session.OrderID != "" {
			var order models.Order
			if err := db.Preload("Items").First(&order, "id = ?", session.OrderID).Error; err == nil {
				resp["order"] = order
				resp["order_display_ref"] = order.DisplayRef()
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /checkout/:id/shipping
func SubmitShippingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ShippingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		session, err := SubmitShipping(db, userID, c.Param("id"), input)
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			case errors.Is(err, ErrSessionNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
			case errors.Is(err, ErrInvalidState):
				c.JSON(http.StatusConflict, gin.H{"error": "Checkout already completed"})
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Add some products first!"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shipping details"})
			}
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// POST /checkout/:id/place
func PlaceOrderHandler(db *gorm.DB, gw Gateway, locker Locker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := PlaceOrder(db, gw, locker, userID, c.Param("id"), input.PaymentMethod)
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			case errors.Is(err, ErrSessionNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
			case errors.Is(err, ErrInvalidState):
				c.JSON(http.StatusConflict, gin.H{"error": "Complete the shipping step first"})
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Add some products first!"})
			case errors.Is(err, ErrBusy):
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Order placement already in progress, please wait"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initiate payment. Please try again."})
			}
			return
		}

		resp := gin.H{
			"session":           result.Session,
			"order_id":          result.Order.ID,
			"order_display_ref": result.Order.DisplayRef(),
		}
		if result.PaymentURL != "" {
			resp["payment_url"] = result.PaymentURL
		} else {
			resp["message"] = "Order placed successfully!"
		}
		c.JSON(http.StatusOK, resp)
	}
}
