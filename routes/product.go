package routes

import (
	productcontroller "github.com/adarshalexbalmuchu/Unitech/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("/:id/inquiry", productcontroller.CreateInquiry(db))
	}
}
