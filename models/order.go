package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "pending"   // Created, awaiting payment outcome
	OrderStatusConfirmed OrderStatus = "confirmed" // Paid, or placed as pay-on-delivery
	OrderStatusCancelled OrderStatus = "cancelled" // Buyer dismissed the payment widget
	OrderStatusFailed    OrderStatus = "failed"    // Gateway declined the payment

	// Payment methods
	PaymentMethodGateway PaymentMethod = "gateway"
	PaymentMethodCOD     PaymentMethod = "cod"
)

// Order is the immutable record of a completed or attempted purchase.
// TotalAmount is fixed when the buyer enters the payment step and is
// never recomputed, even if product prices change afterwards.
type Order struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	OrderRef      string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	ShippingFee   float64       `json:"shipping_fee"`
	Tax           float64       `json:"tax"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	PaymentID     string        `json:"payment_id"`
	FailureReason string        `json:"failure_reason,omitempty"`
	ShippingName  string        `json:"shipping_name"`
	ShippingPhone string        `json:"shipping_phone"`
	ShippingEmail string        `json:"shipping_email"`
	ShippingAddr  string        `json:"shipping_address"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// DisplayRef is the short identifier shown on the confirmation screen.
func (o *Order) DisplayRef() string {
	if len(o.ID) < 8 {
		return strings.ToUpper(o.ID)
	}
	return strings.ToUpper(o.ID[:8])
}

// OrderItem snapshots a product's name and unit price at order time,
// decoupled from the live Product row. Never mutated after creation.
type OrderItem struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string  `gorm:"index;not null" json:"order_id"`
	ProductID string  `gorm:"not null" json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
