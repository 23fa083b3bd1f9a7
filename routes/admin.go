package routes

import (
	catalogControllers "github.com/Wilfred1097/CakeShop/controllers/catalog"
	orderControllers "github.com/Wilfred1097/CakeShop/controllers/order"
	profileControllers "github.com/Wilfred1097/CakeShop/controllers/profile"
	userControllers "github.com/Wilfred1097/CakeShop/controllers/user"
	"github.com/Wilfred1097/CakeShop/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with
// the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Cake Management ───────────
		cakeAdmin := adminGroup.Group("/cakes")
		{
			cakeAdmin.POST("", catalogControllers.CreateCake(db))
			cakeAdmin.PUT("/:id", catalogControllers.UpdateCake(db))
			cakeAdmin.DELETE("/:id", catalogControllers.DeleteCake(db))
			cakeAdmin.POST("/images", catalogControllers.UploadCakeImage())
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", catalogControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", catalogControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", catalogControllers.DeleteCategory(db))
		}

		// ─────────── Shop Profile ───────────
		adminGroup.PUT("/shop-profile", profileControllers.UpsertShopProfile(db))
		adminGroup.POST("/shop-profile/logo", profileControllers.UploadShopLogo(db))

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		}
	}
}
