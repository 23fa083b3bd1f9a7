package routes

import (
	cartControllers "github.com/Wilfred1097/CakeShop/controllers/cart"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, notifier *cartControllers.Notifier) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront reads
	SetupCatalogRoutes(r, db)

	// Customer routes (JWT-protected)
	SetupUserRoutes(r, db, notifier)

	// Admin routes (JWT + role-protected)
	SetupAdminRoutes(r, db)
}
