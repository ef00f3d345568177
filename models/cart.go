package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem holds one (user, product) line. The composite unique index is
// what keeps add-to-cart from ever creating a duplicate row for the same
// product; a second add increments Quantity instead.
type CartItem struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID string    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}

// CartTotal sums price x quantity over the given items. Items whose
// product carries no price contribute nothing; such products are blocked
// from the cart at add time anyway.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		if item.Product.Price != nil {
			total += *item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

// CartCount sums quantities over the given items.
func CartCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
