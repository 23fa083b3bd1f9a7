package profileControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ShopProfile{}))
	return db
}

func validProfileInput(shopName string) ShopProfileInput {
	return ShopProfileInput{
		ShopName: shopName,
		Address:  "123 Cake Street, Dessert Town, DT 12345",
		Phone:    "+1 (555) 123-4567",
		Email:    "info@sweetdelightsbakery.com",
		AboutUs:  "Cakes and pastries for every occasion since 2010.",
	}
}

func TestConcurrentFirstSavesKeepOneRow(t *testing.T) {
	db := setupTestDB(t)

	// Two sessions that both saw an empty table save with the pinned key;
	// the second lands on the same row instead of inserting another.
	first := models.ShopProfile{ID: models.ShopProfileID, ShopName: "First Session"}
	require.NoError(t, db.Save(&first).Error)
	second := models.ShopProfile{ID: models.ShopProfileID, ShopName: "Second Session"}
	require.NoError(t, db.Save(&second).Error)

	var count int64
	require.NoError(t, db.Model(&models.ShopProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.ShopProfile
	require.NoError(t, db.First(&stored, models.ShopProfileID).Error)
	assert.Equal(t, "Second Session", stored.ShopName)
}

func TestUpsertShopProfileCreatesThenUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	r := gin.New()
	r.PUT("/admin/shop-profile", UpsertShopProfile(db))

	put := func(input ShopProfileInput) *httptest.ResponseRecorder {
		body, err := json.Marshal(input)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/shop-profile", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, put(validProfileInput("Sweet Delights Bakery")).Code)
	assert.Equal(t, http.StatusOK, put(validProfileInput("Renamed Bakery")).Code)

	var count int64
	require.NoError(t, db.Model(&models.ShopProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.ShopProfile
	require.NoError(t, db.First(&stored, models.ShopProfileID).Error)
	assert.Equal(t, "Renamed Bakery", stored.ShopName)
}
