package routes

import (
	cartControllers "github.com/Wilfred1097/CakeShop/controllers/cart"
	orderControllers "github.com/Wilfred1097/CakeShop/controllers/order"
	userControllers "github.com/Wilfred1097/CakeShop/controllers/user"
	"github.com/Wilfred1097/CakeShop/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, notifier *cartControllers.Notifier) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.ListItemsHandler(db))
			cartGroup.POST("/", cartControllers.AddToCartHandler(db, notifier))
			cartGroup.PUT("/:item_id", cartControllers.UpdateQuantityHandler(db, notifier))
			cartGroup.DELETE("/:item_id", cartControllers.RemoveItemHandler(db, notifier))
			cartGroup.DELETE("/", cartControllers.ClearCartHandler(db, notifier))
			cartGroup.GET("/ws", cartControllers.CartWebSocketHandler(notifier))
		}

		// ──────────────── Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("/", orderControllers.PlaceOrderHandler(db, notifier))
			orderGroup.GET("/", orderControllers.GetUserOrdersHandler(db))
			orderGroup.GET("/:orderID", orderControllers.GetUserOrderByIDHandler(db))
		}
	}
}
