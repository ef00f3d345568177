package productcontroller

import (
	"errors"
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InquiryInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateInquiry records a contact request against a product. This is the
// purchase path for price-on-request products, which never reach the
// cart.
func CreateInquiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var input InquiryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		inquiry := models.Inquiry{
			ProductID: product.ID,
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Message:   input.Message,
		}
		// Inquiries are open to anonymous visitors; attach the user id
		// only when a signed-in session made the request.
		if userID, exists := c.Get("user_id"); exists {
			inquiry.UserID = userID.(string)
		}

		if err := db.Create(&inquiry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Inquiry submitted. We will get back to you shortly."})
	}
}

// GetInquiries lists inquiries for the admin surface, newest first.
func GetInquiries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inquiries []models.Inquiry
		if err := db.Order("created_at DESC").Find(&inquiries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
			return
		}
		c.JSON(http.StatusOK, inquiries)
	}
}
