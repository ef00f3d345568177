package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportProductsFromExcel bulk-creates or updates products from an
// uploaded xlsx sheet. Rows with an existing product ID update that row;
// rows without one insert. Price left blank imports as price-on-request.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			id := get(0)
			name := get(1)
			description := get(2)
			imageURL := get(3)
			category := get(4)
			brand := get(5)
			priceStr := get(6)
			originalPriceStr := get(7)
			discount, _ := strconv.Atoi(get(8))
			rating, _ := strconv.ParseFloat(get(9), 64)
			reviews, _ := strconv.Atoi(get(10))
			stock, _ := strconv.Atoi(get(11))
			featured := strings.EqualFold(get(12), "true")
			trending := strings.EqualFold(get(13), "true")

			if name == "" || category == "" {
				skippedCount++
				continue
			}

			var price, originalPrice *float64
			if priceStr != "" {
				v, err := strconv.ParseFloat(priceStr, 64)
				if err != nil {
					skippedCount++
					continue
				}
				price = &v
			}
			if originalPriceStr != "" {
				if v, err := strconv.ParseFloat(originalPriceStr, 64); err == nil {
					originalPrice = &v
				}
			}

			product := models.Product{
				Name:            name,
				Description:     description,
				ImageURL:        imageURL,
				Category:        category,
				Brand:           brand,
				Price:           price,
				OriginalPrice:   originalPrice,
				DiscountPercent: discount,
				Rating:          rating,
				ReviewsCount:    reviews,
				Stock:           stock,
				IsFeatured:      featured,
				IsTrending:      trending,
			}

			if id != "" {
				var existing models.Product
				if err := db.First(&existing, "id = ?", id).Error; err == nil {
					product.ID = existing.ID
					if err := db.Model(&existing).Select(
						"name", "description", "image_url", "category", "brand",
						"price", "original_price", "discount_percent", "rating",
						"reviews_count", "stock", "is_featured", "is_trending",
					).Updates(&product).Error; err == nil {
						updatedCount++
						continue
					}
					skippedCount++
					continue
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

// ExportProductsToExcel streams the whole catalog as an xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Description", "ImageURL", "Category", "Brand",
			"Price", "OriginalPrice", "DiscountPercent", "Rating",
			"ReviewsCount", "Stock", "IsFeatured", "IsTrending", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Brand)
			if p.Price != nil {
				row.AddCell().SetValue(*p.Price)
			} else {
				row.AddCell().SetValue("")
			}
			if p.OriginalPrice != nil {
				row.AddCell().SetValue(*p.OriginalPrice)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.DiscountPercent)
			row.AddCell().SetValue(p.Rating)
			row.AddCell().SetValue(p.ReviewsCount)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(strconv.FormatBool(p.IsFeatured))
			row.AddCell().SetValue(strconv.FormatBool(p.IsTrending))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
