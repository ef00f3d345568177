package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListQuery carries the optional listing filters. Zero values mean
// "no filter"; any combination re-shapes the same base query.
type ListQuery struct {
	Category string
	Brand    string
	Search   string
	Featured bool
	Trending bool
	Limit    int
}

// QueryProducts builds and runs the filtered listing query. Default
// ordering is newest first.
func QueryProducts(db *gorm.DB, q ListQuery) ([]models.Product, error) {
	query := db.Model(&models.Product{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Brand != "" {
		query = query.Where("brand = ?", q.Brand)
	}
	if q.Search != "" {
		// LOWER + LIKE rather than ILIKE so the predicate works on any
		// SQL backend.
		likePattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
			likePattern, likePattern, likePattern,
		)
	}
	if q.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if q.Trending {
		query = query.Where("is_trending = ?", true)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := ListQuery{
			Category: c.Query("category"),
			Brand:    c.Query("brand"),
			Search:   c.Query("search"),
			Featured: c.Query("featured") == "true",
			Trending: c.Query("trending") == "true",
		}
		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			q.Limit = limit
		}

		products, err := QueryProducts(db, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
