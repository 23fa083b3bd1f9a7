package cartControllers

import (
	"testing"
	"time"

	"github.com/Wilfred1097/CakeShop/apperr"
	catalogControllers "github.com/Wilfred1097/CakeShop/controllers/catalog"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Cake{},
		&models.CakeImage{},
		&models.CakeIngredient{},
		&models.Category{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCake(t *testing.T, db *gorm.DB, name string, price int64) models.Cake {
	t.Helper()
	cake := models.Cake{Name: name, Price: decimal.NewFromInt(price), Description: "freshly baked test cake"}
	require.NoError(t, db.Create(&cake).Error)
	return cake
}

func TestAddToCartIncrementsExistingRow(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Chocolate Fudge", 100)

	_, err := AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	_, err = AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartValidation(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Red Velvet", 80)

	_, err := AddToCart(db, nil, "user-1", cake.ID, 0)
	assert.Equal(t, apperr.EINVALID, apperr.Code(err))

	_, err = AddToCart(db, nil, "user-1", 9999, 1)
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
}

func TestUpdateQuantityFloor(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Ube Cake", 120)

	item, err := AddToCart(db, nil, "user-1", cake.ID, 2)
	require.NoError(t, err)

	// Quantity below one is the caller's cue to remove, never an update.
	_, err = UpdateQuantity(db, nil, "user-1", item.ID, 0)
	assert.Equal(t, apperr.EINVALID, apperr.Code(err))

	updated, err := UpdateQuantity(db, nil, "user-1", item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestUpdateQuantityOtherUsersRow(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Mango Chiffon", 90)

	item, err := AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)

	_, err = UpdateQuantity(db, nil, "user-2", item.ID, 3)
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Carrot Cake", 70)

	item, err := AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, nil, "user-1", item.ID))

	err = RemoveItem(db, nil, "user-1", item.ID)
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
}

func TestListItemsResolvesCakeAndFallbackImage(t *testing.T) {
	db := setupTestDB(t)
	plain := seedCake(t, db, "Plain Cheesecake", 150)
	pictured := seedCake(t, db, "Strawberry Shortcake", 200)
	require.NoError(t, db.Create(&models.CakeImage{CakeID: pictured.ID, URL: "/uploads/cakes/strawberry.jpg", Position: 0}).Error)
	require.NoError(t, db.Create(&models.CakeImage{CakeID: pictured.ID, URL: "/uploads/cakes/strawberry-side.jpg", Position: 1}).Error)

	_, err := AddToCart(db, nil, "user-1", plain.ID, 1)
	require.NoError(t, err)
	_, err = AddToCart(db, nil, "user-1", pictured.ID, 2)
	require.NoError(t, err)

	lines, err := ListItems(db, "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Plain Cheesecake", lines[0].CakeName)
	assert.Equal(t, catalogControllers.FallbackCakeImage, lines[0].CakeImage)
	assert.Equal(t, "/uploads/cakes/strawberry.jpg", lines[1].CakeImage)
}

func TestListItemsSkipsDeletedCakes(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Banana Bread", 60)

	_, err := AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.Cake{}, cake.ID).Error)

	lines, err := ListItems(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClear(t *testing.T) {
	db := setupTestDB(t)
	a := seedCake(t, db, "Cake A", 100)
	b := seedCake(t, db, "Cake B", 50)

	_, err := AddToCart(db, nil, "user-1", a.ID, 2)
	require.NoError(t, err)
	_, err = AddToCart(db, nil, "user-1", b.ID, 1)
	require.NoError(t, err)
	_, err = AddToCart(db, nil, "user-2", a.ID, 1)
	require.NoError(t, err)

	require.NoError(t, Clear(db, nil, "user-1"))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Zero(t, count)

	// Other carts untouched.
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-2").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTotal(t *testing.T) {
	lines := []CartLine{
		{Price: decimal.NewFromInt(100), Quantity: 2},
		{Price: decimal.NewFromInt(50), Quantity: 1},
	}
	assert.True(t, Total(lines).Equal(decimal.NewFromInt(250)))
	assert.True(t, Total(nil).Equal(decimal.Zero))
}

func TestNotifierDeliversCartEvents(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Matcha Roll", 110)

	notifier := NewNotifier()
	events := notifier.Subscribe()
	defer notifier.Unsubscribe(events)

	_, err := AddToCart(db, notifier, "user-1", cake.ID, 1)
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "user-1", ev.UserID)
		assert.Equal(t, "added", ev.Action)
		assert.Equal(t, 1, ev.ItemCount)
	case <-time.After(time.Second):
		t.Fatal("expected a cart event")
	}
}
