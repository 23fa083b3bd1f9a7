package profileControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const logoUploadDir = "/var/www/cakeshop/uploads/logo"
const logoPublicPath = "/uploads/logo"

type ShopProfileInput struct {
	ShopName     string `json:"shop_name" binding:"required,min=2"`
	Address      string `json:"address" binding:"required,min=5"`
	Phone        string `json:"phone" binding:"required,min=5"`
	Email        string `json:"email" binding:"required,email"`
	AboutUs      string `json:"about_us" binding:"required,min=10"`
	FacebookURL  string `json:"facebook_url" binding:"omitempty,url"`
	InstagramURL string `json:"instagram_url" binding:"omitempty,url"`
	TwitterURL   string `json:"twitter_url" binding:"omitempty,url"`
	GithubURL    string `json:"github_url" binding:"omitempty,url"`
}

// GET /shop-profile — the singleton row, or built-in defaults when none
// exists yet. Absence is never an error.
func GetShopProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile models.ShopProfile
		err := db.First(&profile, models.ShopProfileID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.DefaultShopProfile())
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch shop profile"})
			return
		}
		if profile.LogoURL == "" {
			profile.LogoURL = models.DefaultLogoURL
		}
		c.JSON(http.StatusOK, profile)
	}
}

// PUT /admin/shop-profile — create the singleton on first save, update it
// afterwards.
func UpsertShopProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShopProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var profile models.ShopProfile
		err := db.First(&profile, models.ShopProfileID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch shop profile"})
			return
		}

		profile.ID = models.ShopProfileID
		profile.ShopName = input.ShopName
		profile.Address = input.Address
		profile.Phone = input.Phone
		profile.Email = input.Email
		profile.AboutUs = input.AboutUs
		profile.FacebookURL = input.FacebookURL
		profile.InstagramURL = input.InstagramURL
		profile.TwitterURL = input.TwitterURL
		profile.GithubURL = input.GithubURL

		if err := db.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shop profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// POST /admin/shop-profile/logo — multipart logo upload. Replacing the logo
// removes the previously stored file.
func UploadShopLogo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("logo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
			return
		}

		var profile models.ShopProfile
		dbErr := db.First(&profile, models.ShopProfileID).Error
		if dbErr != nil && !errors.Is(dbErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch shop profile"})
			return
		}
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			profile = models.DefaultShopProfile()
			profile.LogoURL = ""
		}
		profile.ID = models.ShopProfileID

		if err := os.MkdirAll(logoUploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		if strings.HasPrefix(profile.LogoURL, logoPublicPath+"/") {
			oldPath := filepath.Join(logoUploadDir, filepath.Base(profile.LogoURL))
			_ = os.Remove(oldPath)
		}

		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")

		filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
		savePath := filepath.Join(logoUploadDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save logo"})
			return
		}

		profile.LogoURL = fmt.Sprintf("%s/%s", logoPublicPath, filename)
		if err := db.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shop profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
