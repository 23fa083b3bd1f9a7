package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/Wilfred1097/CakeShop/apperr"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	CakeID   uint `json:"cake_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperr.EAUTH})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperr.EAUTH})
		return "", false
	}
	return userID, true
}

// POST /user/cart
func AddToCartHandler(db *gorm.DB, notifier *Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		item, err := AddToCart(db, notifier, userID, input.CakeID, input.Quantity)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart/:item_id
func UpdateQuantityHandler(db *gorm.DB, notifier *Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateQuantity(db, notifier, userID, uint(itemID), input.Quantity)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:item_id
func RemoveItemHandler(db *gorm.DB, notifier *Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		if err := RemoveItem(db, notifier, userID, uint(itemID)); err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /user/cart
func ListItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		lines, err := ListItems(db, userID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": lines, "total": Total(lines)})
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB, notifier *Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := Clear(db, notifier, userID); err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
