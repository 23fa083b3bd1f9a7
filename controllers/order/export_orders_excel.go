package orderControllers

import (
	"net/http"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportOrdersToExcel writes every order and its line items to a spreadsheet
// for offline bookkeeping.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "OrderRef", "Customer", "Phone", "ShippingAddress",
			"Status", "TotalAmount", "CakeName", "UnitPrice", "Quantity", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// One row per line item; order fields repeat per row.
		for _, o := range orders {
			for _, item := range o.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.ID)
				row.AddCell().SetValue(o.OrderRef)
				row.AddCell().SetValue(o.User.FullName)
				row.AddCell().SetValue(o.PhoneNumber)
				row.AddCell().SetValue(o.ShippingAddress)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(o.TotalAmount.String())
				row.AddCell().SetValue(item.CakeName)
				row.AddCell().SetValue(item.Price.String())
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
