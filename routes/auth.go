package routes

import (
	"github.com/Wilfred1097/CakeShop/auth"
	"github.com/Wilfred1097/CakeShop/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))

		// Admin self-registration stays public but requires the signup key.
		authGroup.POST("/register-admin", middleware.ValidateSignupKey, auth.RegisterAdmin(db))
	}
}
