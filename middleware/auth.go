package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Wilfred1097/CakeShop/apperr"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken parses the Bearer token and stores user_id and role in the
// request context. Missing or invalid tokens abort with the auth_required
// code so clients know to redirect to login.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing", "code": apperr.EAUTH})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": apperr.EAUTH})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims", "code": apperr.EAUTH})
		c.Abort()
		return
	}

	c.Set("user_id", claims["sub"])
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}

	c.Next()
}
