package profileControllers

import (
	"errors"
	"net/http"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateProfileInput struct {
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
}

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var profile models.Profile
		if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No saved details yet; the checkout prefill treats this
				// the same as an empty profile.
				c.JSON(http.StatusOK, models.Profile{UserID: userID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// PUT /user/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var profile models.Profile
		err := db.First(&profile, "user_id = ?", userID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		profile.UserID = userID

		if input.FullName != nil {
			profile.FullName = *input.FullName
		}
		if input.Phone != nil {
			profile.Phone = *input.Phone
		}
		if input.Email != nil {
			profile.Email = *input.Email
		}
		if input.Address != nil {
			profile.Address = *input.Address
		}
		if input.City != nil {
			profile.City = *input.City
		}
		if input.State != nil {
			profile.State = *input.State
		}
		if input.PostalCode != nil {
			profile.PostalCode = *input.PostalCode
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}
