package routes

import (
	catalogControllers "github.com/Wilfred1097/CakeShop/controllers/catalog"
	profileControllers "github.com/Wilfred1097/CakeShop/controllers/profile"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public storefront reads: cake browsing,
// categories and the shop profile. No authentication required.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/cakes", catalogControllers.GetCakes(db))
	r.GET("/cakes/:id", catalogControllers.GetCakeByID(db))
	r.GET("/categories", catalogControllers.GetAllCategories(db))
	r.GET("/shop-profile", profileControllers.GetShopProfile(db))
}
