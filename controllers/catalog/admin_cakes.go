package catalogControllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CakeInput struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required,min=10"`
	Weight      string   `json:"weight"`
	Servings    int      `json:"servings" binding:"omitempty,min=1"`
	CategoryIDs []uint   `json:"category_ids" binding:"required,min=1"`
	Ingredients []string `json:"ingredients"`
	Images      []string `json:"images"` // public URLs, in gallery order
}

// CreateCake inserts a cake with its categories, ingredients and ordered
// images in a single transaction.
func CreateCake(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CakeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var categories []models.Category
		if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if len(categories) != len(input.CategoryIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more categories do not exist"})
			return
		}

		cake := models.Cake{
			Name:        input.Name,
			Price:       decimal.NewFromFloat(input.Price),
			Description: input.Description,
			Weight:      input.Weight,
			Servings:    input.Servings,
			Categories:  categories,
		}
		for _, name := range input.Ingredients {
			if name = strings.TrimSpace(name); name != "" {
				cake.Ingredients = append(cake.Ingredients, models.CakeIngredient{Name: name})
			}
		}
		for pos, url := range input.Images {
			cake.Images = append(cake.Images, models.CakeImage{URL: url, Position: pos})
		}

		if err := db.Create(&cake).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cake"})
			return
		}
		c.JSON(http.StatusCreated, newCakeView(cake))
	}
}

// UpdateCake replaces the cake's fields and sub-resources. Ingredients and
// images are swapped wholesale; the form always submits the full lists.
func UpdateCake(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cake ID"})
			return
		}

		var input CakeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cake models.Cake
		if err := db.Preload("Images").First(&cake, uint(id64)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cake not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cake"})
			}
			return
		}
		previousImages := cake.Images
		cake.Images = nil

		var categories []models.Category
		if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if len(categories) != len(input.CategoryIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more categories do not exist"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			cake.Name = input.Name
			cake.Price = decimal.NewFromFloat(input.Price)
			cake.Description = input.Description
			cake.Weight = input.Weight
			cake.Servings = input.Servings
			if err := tx.Save(&cake).Error; err != nil {
				return err
			}

			if err := tx.Model(&cake).Association("Categories").Replace(categories); err != nil {
				return err
			}

			if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CakeIngredient{}).Error; err != nil {
				return err
			}
			for _, name := range input.Ingredients {
				if name = strings.TrimSpace(name); name == "" {
					continue
				}
				if err := tx.Create(&models.CakeIngredient{CakeID: cake.ID, Name: name}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CakeImage{}).Error; err != nil {
				return err
			}
			for pos, url := range input.Images {
				if err := tx.Create(&models.CakeImage{CakeID: cake.ID, URL: url, Position: pos}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cake"})
			return
		}

		removeDroppedImageFiles(previousImages, input.Images)

		view, err := GetCakeView(db, cake.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload cake"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DeleteCake removes a cake together with its join rows, ingredients, images
// and any cart references, so nothing dangles afterwards.
func DeleteCake(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cake ID"})
			return
		}

		var cake models.Cake
		if err := db.Preload("Images").First(&cake, uint(id64)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cake not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cake"})
			}
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&cake).Association("Categories").Clear(); err != nil {
				return err
			}
			if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CakeIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CakeImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cake_id = ?", cake.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cake).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cake"})
			return
		}

		removeDroppedImageFiles(cake.Images, nil)

		c.JSON(http.StatusOK, gin.H{"message": "Cake deleted successfully"})
	}
}

// removeDroppedImageFiles deletes the locally stored files behind image rows
// that are no longer referenced.
func removeDroppedImageFiles(previous []models.CakeImage, kept []string) {
	for _, path := range droppedLocalImageFiles(previous, kept) {
		_ = os.Remove(path)
	}
}

// droppedLocalImageFiles lists the stored files behind image rows that are no
// longer referenced. URLs still present in kept are preserved, and external
// URLs are left alone.
func droppedLocalImageFiles(previous []models.CakeImage, kept []string) []string {
	still := make(map[string]bool, len(kept))
	for _, url := range kept {
		still[url] = true
	}
	var paths []string
	for _, img := range previous {
		if still[img.URL] {
			continue
		}
		if strings.HasPrefix(img.URL, cakePublicPath+"/") {
			paths = append(paths, filepath.Join(cakeUploadDir, filepath.Base(img.URL)))
		}
	}
	return paths
}
