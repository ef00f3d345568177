package productcontroller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OptionalFloat distinguishes a field absent from the request body from
// an explicit null. An explicit "price": null writes NULL, returning the
// product to price-on-request; an absent field leaves the column alone.
type OptionalFloat struct {
	Set   bool
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type ProductUpdateInput struct {
	Name            *string       `json:"name"`
	Description     *string       `json:"description"`
	ImageURL        *string       `json:"image_url"`
	Category        *string       `json:"category"`
	Brand           *string       `json:"brand"`
	Price           OptionalFloat `json:"price"`
	OriginalPrice   OptionalFloat `json:"original_price"`
	DiscountPercent *int          `json:"discount_percent"`
	Rating          *float64      `json:"rating"`
	ReviewsCount    *int          `json:"reviews_count"`
	Stock           *int          `json:"stock"`
	IsFeatured      *bool         `json:"is_featured"`
	IsTrending      *bool         `json:"is_trending"`
}

// UpdateProduct applies a partial update; only the fields present in the
// request body are touched.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.Category != nil {
			updates["category"] = *input.Category
		}
		if input.Brand != nil {
			updates["brand"] = *input.Brand
		}
		if input.Price.Set {
			if input.Price.Value != nil && *input.Price.Value < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
				return
			}
			if input.Price.Value != nil {
				updates["price"] = *input.Price.Value
			} else {
				updates["price"] = nil
			}
		}
		if input.OriginalPrice.Set {
			if input.OriginalPrice.Value != nil {
				updates["original_price"] = *input.OriginalPrice.Value
			} else {
				updates["original_price"] = nil
			}
		}
		if input.DiscountPercent != nil {
			updates["discount_percent"] = *input.DiscountPercent
		}
		if input.Rating != nil {
			updates["rating"] = *input.Rating
		}
		if input.ReviewsCount != nil {
			updates["reviews_count"] = *input.ReviewsCount
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.IsFeatured != nil {
			updates["is_featured"] = *input.IsFeatured
		}
		if input.IsTrending != nil {
			updates["is_trending"] = *input.IsTrending
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
