package catalogControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Wilfred1097/CakeShop/apperr"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FallbackCakeImage is served whenever a cake has no uploaded images, both in
// the catalog and in resolved cart lines.
const FallbackCakeImage = "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=500&q=80"

// CakeView is the denormalized shape the storefront renders: the cake row
// plus its category names, ingredient list and gallery, assembled in one read.
type CakeView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Weight       string          `json:"weight,omitempty"`
	Servings     int             `json:"servings,omitempty"`
	Categories   []string        `json:"categories"`
	Ingredients  []string        `json:"ingredients"`
	Images       []string        `json:"images"`
	PrimaryImage string          `json:"primary_image"`
	CreatedAt    time.Time       `json:"created_at"`
}

func newCakeView(cake models.Cake) CakeView {
	view := CakeView{
		ID:          cake.ID,
		Name:        cake.Name,
		Price:       cake.Price,
		Description: cake.Description,
		Weight:      cake.Weight,
		Servings:    cake.Servings,
		Categories:  make([]string, 0, len(cake.Categories)),
		Ingredients: make([]string, 0, len(cake.Ingredients)),
		Images:      make([]string, 0, len(cake.Images)),
		CreatedAt:   cake.CreatedAt,
	}
	for _, cat := range cake.Categories {
		view.Categories = append(view.Categories, cat.Name)
	}
	for _, ing := range cake.Ingredients {
		view.Ingredients = append(view.Ingredients, ing.Name)
	}
	for _, img := range cake.Images {
		view.Images = append(view.Images, img.URL)
	}
	view.PrimaryImage = FallbackCakeImage
	if len(view.Images) > 0 {
		view.PrimaryImage = view.Images[0]
	}
	return view
}

func withSubResources(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories").
		Preload("Ingredients").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		})
}

// ListCakeViews returns every cake as a CakeView. Missing sub-resources
// (no images, no ingredients) come back as empty slices, never as errors.
// categoryID of 0 means no filter.
func ListCakeViews(db *gorm.DB, categoryID uint) ([]CakeView, error) {
	var cakes []models.Cake
	query := withSubResources(db)
	if categoryID != 0 {
		query = query.
			Joins("JOIN cake_categories ON cake_categories.cake_id = cakes.id").
			Where("cake_categories.category_id = ?", categoryID)
	}
	if err := query.Find(&cakes).Error; err != nil {
		return nil, apperr.New(apperr.ETRANSIENT, "failed to load cakes")
	}

	views := make([]CakeView, 0, len(cakes))
	for _, cake := range cakes {
		views = append(views, newCakeView(cake))
	}
	return views, nil
}

// GetCakeView returns the denormalized view of a single cake.
func GetCakeView(db *gorm.DB, id uint) (CakeView, error) {
	var cake models.Cake
	if err := withSubResources(db).First(&cake, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CakeView{}, apperr.New(apperr.ENOTFOUND, "cake not found")
		}
		return CakeView{}, apperr.New(apperr.ETRANSIENT, "failed to load cake")
	}
	return newCakeView(cake), nil
}

// PrimaryImageURL resolves a cake's first gallery image or the fallback.
// Used by the cart when resolving lines.
func PrimaryImageURL(db *gorm.DB, cakeID uint) string {
	var image models.CakeImage
	err := db.Where("cake_id = ?", cakeID).Order("position ASC").First(&image).Error
	if err != nil || image.URL == "" {
		return FallbackCakeImage
	}
	return image.URL
}

// GET /cakes?category_id=
func GetCakes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID uint
		if raw := c.Query("category_id"); raw != "" {
			id64, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			categoryID = uint(id64)
		}

		views, err := ListCakeViews(db, categoryID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /cakes/:id
func GetCakeByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cake ID"})
			return
		}

		view, err := GetCakeView(db, uint(id64))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
