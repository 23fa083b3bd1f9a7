package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Wilfred1097/CakeShop/apperr"
	cartControllers "github.com/Wilfred1097/CakeShop/controllers/cart"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
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

func shippingForm() PlaceOrderRequest {
	return PlaceOrderRequest{
		FullName:    "Juan Dela Cruz",
		Address:     "123 Mabini St, Quezon City",
		PhoneNumber: "+639123456789",
	}
}

func TestPlaceOrderSnapshotsPricesAndClearsCart(t *testing.T) {
	db := setupTestDB(t)
	cakeA := seedCake(t, db, "Cake A", 100)
	cakeB := seedCake(t, db, "Cake B", 50)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cakeA.ID, 2)
	require.NoError(t, err)
	_, err = cartControllers.AddToCart(db, nil, "user-1", cakeB.ID, 1)
	require.NoError(t, err)

	order, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(250)),
		"expected total 250, got %s", order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderRef)

	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[1].Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, order.Items[1].Quantity)

	// Total equals the sum of its line items.
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, order.TotalAmount.Equal(sum))

	// Cart is empty afterwards.
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	db := setupTestDB(t)

	_, err := PlaceOrder(db, nil, "user-1", shippingForm())
	assert.Equal(t, apperr.ECONFLICT, apperr.Code(err))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "an empty cart must never create an order row")
}

func TestOrderTotalSurvivesLaterPriceChange(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Sans Rival", 300)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)

	order, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)

	// Reprice the cake after the order was placed.
	require.NoError(t, db.Model(&models.Cake{}).Where("id = ?", cake.ID).
		Update("price", decimal.NewFromInt(999)).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	assert.True(t, reloaded.TotalAmount.Equal(decimal.NewFromInt(300)))
	require.Len(t, reloaded.Items, 1)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.NewFromInt(300)))
}

func TestPlaceOrderSkipsStaleCartRows(t *testing.T) {
	db := setupTestDB(t)
	kept := seedCake(t, db, "Kept Cake", 40)
	removed := seedCake(t, db, "Removed Cake", 500)

	_, err := cartControllers.AddToCart(db, nil, "user-1", kept.ID, 1)
	require.NoError(t, err)
	_, err = cartControllers.AddToCart(db, nil, "user-1", removed.ID, 1)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.Cake{}, removed.ID).Error)

	order, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(40)))
}

func TestTransitionPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Brazo de Mercedes", 250)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	order, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)

	updated, err := TransitionOrderStatus(db, order.ID, models.OrderStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDeclined, updated.Status)

	// A second decline on the same order is rejected.
	_, err = TransitionOrderStatus(db, order.ID, models.OrderStatusDeclined)
	assert.Equal(t, apperr.ECONFLICT, apperr.Code(err))
}

func TestTransitionRules(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Leche Flan Cake", 180)

	placeOrder := func() models.Order {
		_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
		require.NoError(t, err)
		order, err := PlaceOrder(db, nil, "user-1", shippingForm())
		require.NoError(t, err)
		return order
	}

	accepted := placeOrder()
	_, err := TransitionOrderStatus(db, accepted.ID, models.OrderStatusAccepted)
	require.NoError(t, err)

	// accepted -> pending and accepted -> accepted are both rejected.
	_, err = TransitionOrderStatus(db, accepted.ID, models.OrderStatusPending)
	assert.Equal(t, apperr.ECONFLICT, apperr.Code(err))
	_, err = TransitionOrderStatus(db, accepted.ID, models.OrderStatusAccepted)
	assert.Equal(t, apperr.ECONFLICT, apperr.Code(err))

	// delivered has no enforced inbound transition.
	pending := placeOrder()
	_, err = TransitionOrderStatus(db, pending.ID, models.OrderStatusDelivered)
	assert.Equal(t, apperr.ECONFLICT, apperr.Code(err))

	_, err = TransitionOrderStatus(db, 9999, models.OrderStatusAccepted)
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
}

func TestLookupOrderByIDAndRef(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Ube Cake", 120)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	placed, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)

	byID, err := LookupOrder(db, strconv.FormatUint(uint64(placed.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byID.ID)

	byRef, err := LookupOrder(db, placed.OrderRef)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byRef.ID)

	_, err = LookupOrder(db, "9999")
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
	_, err = LookupOrder(db, "20260101000000-no-such-ref")
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))
}

func TestLookupOrderNumericParamMatchesIDOnly(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Mocha Roll", 85)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	placed, err := PlaceOrder(db, nil, "user-1", shippingForm())
	require.NoError(t, err)

	// A numeric param must resolve through the id column alone; the ref
	// column has an incompatible type on the production store.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", placed.ID).
		Update("order_ref", "73000000").Error)

	_, err = LookupOrder(db, "73000000")
	assert.Equal(t, apperr.ENOTFOUND, apperr.Code(err))

	byID, err := LookupOrder(db, strconv.FormatUint(uint64(placed.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byID.ID)
}

func TestOrderHandlersRejectMalformedUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	// A signed token can carry a non-string sub claim; the handlers must
	// answer 401 instead of panicking on the assertion.
	badIdentity := func(c *gin.Context) { c.Set("user_id", 12345) }

	r := gin.New()
	r.GET("/user/orders", badIdentity, GetUserOrdersHandler(db))
	r.POST("/user/orders", badIdentity, PlaceOrderHandler(db, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/user/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderPublishesCartClearedEvent(t *testing.T) {
	db := setupTestDB(t)
	cake := seedCake(t, db, "Yema Cake", 95)

	notifier := cartControllers.NewNotifier()
	events := notifier.Subscribe()
	defer notifier.Unsubscribe(events)

	_, err := cartControllers.AddToCart(db, nil, "user-1", cake.ID, 1)
	require.NoError(t, err)
	_, err = PlaceOrder(db, notifier, "user-1", shippingForm())
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "cleared", ev.Action)
		assert.Zero(t, ev.ItemCount)
	default:
		t.Fatal("expected a cart-cleared event")
	}
}
