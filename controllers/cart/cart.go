package cartControllers

import (
	"errors"
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product does not exist")
	ErrProductNotForSale = errors.New("product is price-on-request and cannot be added to cart")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

type AddToCartInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// -------- Core Logic --------

// FetchCart loads the user's cart items joined with their product rows.
func FetchCart(db *gorm.DB, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// AddToCart puts one unit of the product in the user's cart. If a row
// for this (user, product) pair already exists its quantity goes up by
// one; a duplicate row is never created.
func AddToCart(db *gorm.DB, userID, productID string) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if !product.Purchasable() {
		return ErrProductNotForSale
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		return db.Model(&item).Update("quantity", item.Quantity+1).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	newItem := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	return db.Create(&newItem).Error
}

// UpdateQuantity sets a cart item's quantity. Anything below one removes
// the row; a zero or negative quantity is never stored.
func UpdateQuantity(db *gorm.DB, userID, cartItemID string, quantity int) error {
	if quantity < 1 {
		return RemoveFromCart(db, userID, cartItemID)
	}
	result := db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveFromCart deletes one cart row owned by the user.
func RemoveFromCart(db *gorm.DB, userID, cartItemID string) error {
	result := db.Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart deletes every cart row for the user. Used after checkout.
func ClearCart(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

// cartResponse reloads the cart and returns it with derived totals.
// Totals are computed from the fresh item list on every read, never
// stored (refetch-after-write).
func cartResponse(db *gorm.DB, userID, message string) (gin.H, error) {
	items, err := FetchCart(db, userID)
	if err != nil {
		return nil, err
	}
	resp := gin.H{
		"items":      items,
		"cart_total": models.CartTotal(items),
		"cart_count": models.CartCount(items),
	}
	if message != "" {
		resp["message"] = message
	}
	return resp, nil
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		resp, err := cartResponse(db, userID, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /user/cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := AddToCart(db, userID, input.ProductID); err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			case errors.Is(err, ErrProductNotForSale):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This product is available on request only"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			}
			return
		}

		resp, err := cartResponse(db, userID, "Added to cart!")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// PUT /user/cart/:id
func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		cartItemID := c.Param("id")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := UpdateQuantity(db, userID, cartItemID, input.Quantity); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
			}
			return
		}

		resp, err := cartResponse(db, userID, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DELETE /user/cart/:id
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		cartItemID := c.Param("id")

		if err := RemoveFromCart(db, userID, cartItemID); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			}
			return
		}

		resp, err := cartResponse(db, userID, "Removed from cart")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := ClearCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
