package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry. Price is a pointer: nil means
// price-on-request, which blocks the product from the cart and routes
// buyers to the inquiry flow instead.
type Product struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	Category        string    `gorm:"not null;index" json:"category"`
	Brand           string    `gorm:"index" json:"brand"`
	Price           *float64  `json:"price"`
	OriginalPrice   *float64  `json:"original_price"`
	DiscountPercent int       `json:"discount_percent"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviews_count"`
	Stock           int       `json:"stock"`
	IsFeatured      bool      `gorm:"default:false" json:"is_featured"`
	IsTrending      bool      `gorm:"default:false" json:"is_trending"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Purchasable reports whether the product can be added to a cart.
func (p *Product) Purchasable() bool {
	return p.Price != nil
}
