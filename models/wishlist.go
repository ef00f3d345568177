package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem is a boolean (user, product) membership marker; the
// unique index enforces at most one row per pair.
type WishlistItem struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID string    `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

func (wi *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if wi.ID == "" {
		wi.ID = uuid.NewString()
	}
	return nil
}
