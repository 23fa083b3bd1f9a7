package middleware

import (
	"net/http"

	"github.com/Wilfred1097/CakeShop/apperr"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after ValidateToken. A non-admin role is a hard
// 403, never a silent no-op.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required", "code": apperr.EFORBIDDEN})
		c.Abort()
		return
	}
	c.Next()
}
