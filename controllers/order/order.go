package orderControllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Wilfred1097/CakeShop/apperr"
	cartControllers "github.com/Wilfred1097/CakeShop/controllers/cart"
	catalogControllers "github.com/Wilfred1097/CakeShop/controllers/catalog"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "order").Logger()

// -------- Request Structs --------

type PlaceOrderRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2"`
	Address     string `json:"address" binding:"required,min=5"`
	PhoneNumber string `json:"phone_number" binding:"required,min=10"`
	Notes       string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an order. The order row and its
// items are written in one transaction with the prices copied at this
// instant; later cake edits never change them. The cart is cleared only
// after the transaction commits, so a clear failure leaves a valid order
// plus recoverable cart residue instead of failing the placement.
func PlaceOrder(db *gorm.DB, notifier *cartControllers.Notifier, userID string, req PlaceOrderRequest) (models.Order, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return models.Order{}, apperr.New(apperr.ETRANSIENT, "failed to read cart")
	}
	if len(items) == 0 {
		return models.Order{}, apperr.New(apperr.ECONFLICT, "nothing to order: cart is empty")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		var orderItems []models.OrderItem

		for _, item := range items {
			var cake models.Cake
			if err := tx.First(&cake, item.CakeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Cake removed since it was carted; skip the stale row.
					continue
				}
				return err
			}

			total = total.Add(cake.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				CakeID:    cake.ID,
				CakeName:  cake.Name,
				CakeImage: catalogControllers.PrimaryImageURL(tx, cake.ID),
				Price:     cake.Price,
				Quantity:  item.Quantity,
			})
		}

		if len(orderItems) == 0 {
			return apperr.New(apperr.ECONFLICT, "nothing to order: cart is empty")
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     total,
			ShippingAddress: req.Address,
			PhoneNumber:     req.PhoneNumber,
			Notes:           req.Notes,
			Status:          models.OrderStatusPending,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		var coded *apperr.Error
		if errors.As(err, &coded) {
			return models.Order{}, coded
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("order transaction failed")
		return models.Order{}, apperr.New(apperr.ETRANSIENT, "failed to place order")
	}

	// The order is committed; cart residue is an inconsistency to clean up,
	// never a reason to report failure to the customer.
	if err := cartControllers.Clear(db, notifier, userID); err != nil {
		logger.Warn().Err(err).Uint("order_id", order.ID).Msg("cart clear failed after commit, retrying")
		if err := cartControllers.Clear(db, notifier, userID); err != nil {
			logger.Error().Err(err).Uint("order_id", order.ID).Msg("cart clear retry failed; residue left for next request")
		}
	}

	broadcastOrder(order)
	return order, nil
}

// TransitionOrderStatus applies an admin status change, enforcing the
// machine: only pending orders move, and only to accepted or declined. The
// current status is re-read inside the transaction so a double accept or
// decline is rejected instead of silently rewriting the same value.
func TransitionOrderStatus(db *gorm.DB, orderID uint, next models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.ENOTFOUND, "order not found")
			}
			return err
		}
		if !order.Status.CanTransition(next) {
			return apperr.New(apperr.ECONFLICT, "order is "+string(order.Status)+", cannot transition to "+string(next))
		}
		order.Status = next
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		var coded *apperr.Error
		if errors.As(err, &coded) {
			return models.Order{}, coded
		}
		logger.Error().Err(err).Uint("order_id", orderID).Msg("status transition failed")
		return models.Order{}, apperr.New(apperr.ETRANSIENT, "failed to update order status")
	}

	broadcastOrder(order)
	return order, nil
}

// -------- Handlers --------

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperr.EAUTH})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperr.EAUTH})
		return "", false
	}
	return userID, true
}

// POST /user/orders — place order from the current cart.
func PlaceOrderHandler(db *gorm.DB, notifier *cartControllers.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, notifier, userID, req)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Order placed successfully",
			"order_id":  order.ID,
			"order_ref": order.OrderRef,
		})
	}
}

// GET /user/orders — the caller's orders, newest first.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch orders", "code": apperr.ETRANSIENT})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:orderID — own order detail only.
func GetUserOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		order, ok := findOrder(c, db)
		if !ok {
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order", "code": apperr.EFORBIDDEN})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders — every order across users.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch orders", "code": apperr.ETRANSIENT})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID — order detail by numeric id or order_ref.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		next, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := TransitionOrderStatus(db, order.ID, next)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// LookupOrder resolves an order by numeric id or by order_ref. The two
// columns have different types, so the param is matched against exactly one
// of them; comparing a ref string to the bigint id column would break the
// whole query on postgres.
func LookupOrder(db *gorm.DB, param string) (models.Order, error) {
	query := db.Preload("User").Preload("Items")
	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("order_ref = ?", param)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.New(apperr.ENOTFOUND, "order not found")
		}
		logger.Error().Err(err).Str("order_param", param).Msg("order lookup failed")
		return models.Order{}, apperr.New(apperr.ETRANSIENT, "failed to fetch order")
	}
	return order, nil
}

func findOrder(c *gin.Context, db *gorm.DB) (models.Order, bool) {
	id := c.Param("orderID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
		return models.Order{}, false
	}

	order, err := LookupOrder(db, id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": apperr.Code(err)})
		return models.Order{}, false
	}
	return order, true
}
