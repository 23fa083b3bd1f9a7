package catalogControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const cakeUploadDir = "/var/www/cakeshop/uploads/cakes"
const cakePublicPath = "/uploads/cakes"

// UploadCakeImage stores one image file and returns its public URL. The admin
// form calls this per file, then submits the URLs (in gallery order) with the
// cake itself.
func UploadCakeImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		if err := os.MkdirAll(cakeUploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")

		filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
		savePath := filepath.Join(cakeUploadDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": fmt.Sprintf("%s/%s", cakePublicPath, filename)})
	}
}
