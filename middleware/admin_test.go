package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		}, RequireAdmin)
		r.GET("/admin-only", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	cases := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleCustomer, http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		newRouter(tc.role).ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "role %q", tc.role)
	}
}
