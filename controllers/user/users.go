package userControllers

import (
	"net/http"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateUserInput struct {
	FullName    *string `json:"full_name" binding:"omitempty,min=2"`
	Address     *string `json:"address" binding:"omitempty,min=5"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=10"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var user models.User

		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "full_name", "address", "phone_number", "gender", "role", "created_at").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var user models.User

		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.FullName != nil {
			updates["full_name"] = *input.FullName
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.PhoneNumber != nil {
			updates["phone_number"] = *input.PhoneNumber
		}
		if input.Gender != nil {
			updates["gender"] = *input.Gender
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}
