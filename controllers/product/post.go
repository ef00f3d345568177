package productcontroller

import (
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url"`
	Category        string   `json:"category" binding:"required"`
	Brand           string   `json:"brand"`
	Price           *float64 `json:"price"`
	OriginalPrice   *float64 `json:"original_price"`
	DiscountPercent int      `json:"discount_percent"`
	Rating          float64  `json:"rating"`
	ReviewsCount    int      `json:"reviews_count"`
	Stock           int      `json:"stock"`
	IsFeatured      bool     `json:"is_featured"`
	IsTrending      bool     `json:"is_trending"`
}

// CreateProduct creates a new product. Price may be omitted, which marks
// the product as price-on-request.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price != nil && *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}

		product := models.Product{
			Name:            input.Name,
			Description:     input.Description,
			ImageURL:        input.ImageURL,
			Category:        input.Category,
			Brand:           input.Brand,
			Price:           input.Price,
			OriginalPrice:   input.OriginalPrice,
			DiscountPercent: input.DiscountPercent,
			Rating:          input.Rating,
			ReviewsCount:    input.ReviewsCount,
			Stock:           input.Stock,
			IsFeatured:      input.IsFeatured,
			IsTrending:      input.IsTrending,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
