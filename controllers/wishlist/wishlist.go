package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product does not exist")

type ToggleInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// -------- Core Logic --------

// FetchWishlist loads the user's wishlist joined with product rows.
func FetchWishlist(db *gorm.DB, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// IsInWishlist is a pure membership test over a loaded item set.
func IsInWishlist(items []models.WishlistItem, productID string) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ToggleWishlist inserts the product if absent and deletes it if
// present. Returns the resulting membership: toggling twice always
// restores the original state.
func ToggleWishlist(db *gorm.DB, userID, productID string) (bool, error) {
	var existing models.WishlistItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	if err := db.Create(&item).Error; err != nil {
		return false, err
	}
	return true, nil
}

// -------- Handlers --------

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		items, err := FetchWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":          items,
			"wishlist_count": len(items),
		})
	}
}

// POST /user/wishlist/toggle
func ToggleWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ToggleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		inWishlist, err := ToggleWishlist(db, userID, input.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			}
			return
		}

		message := "Removed from wishlist"
		if inWishlist {
			message = "Added to wishlist!"
		}

		items, err := FetchWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        message,
			"in_wishlist":    inWishlist,
			"items":          items,
			"wishlist_count": len(items),
		})
	}
}
