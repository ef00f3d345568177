package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutState string

const (
	CheckoutStateShipping     CheckoutState = "shipping"
	CheckoutStatePayment      CheckoutState = "payment"
	CheckoutStateConfirmation CheckoutState = "confirmation" // terminal
)

// ShippingInfo is the address snapshot collected in the shipping step and
// copied onto the order and profile.
type ShippingInfo struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// ComposedAddress flattens the address fields into the single string
// stored on the order.
func (s ShippingInfo) ComposedAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " - " + s.PostalCode
}

// CheckoutSession tracks one buyer's linear progress through
// shipping -> payment -> confirmation. Totals are fixed when the session
// enters the payment state and are what the order is created with.
type CheckoutSession struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	State         CheckoutState `gorm:"type:VARCHAR(20);default:'shipping'" json:"state"`
	Shipping      ShippingInfo  `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	Subtotal      float64       `json:"subtotal"`
	ShippingFee   float64       `json:"shipping_fee"`
	Tax           float64       `json:"tax"`
	TotalAmount   float64       `json:"total_amount"`
	OrderID       string        `json:"order_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (cs *CheckoutSession) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == "" {
		cs.ID = uuid.NewString()
	}
	return nil
}
