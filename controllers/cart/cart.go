package cartControllers

import (
	"errors"
	"os"

	"github.com/Wilfred1097/CakeShop/apperr"
	catalogControllers "github.com/Wilfred1097/CakeShop/controllers/catalog"
	"github.com/Wilfred1097/CakeShop/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "cart").Logger()

// CartLine is a cart row resolved against the live catalog: current name,
// current price and the primary image (or the shared fallback).
type CartLine struct {
	ID        uint            `json:"id"`
	CakeID    uint            `json:"cake_id"`
	CakeName  string          `json:"cake_name"`
	CakeImage string          `json:"cake_image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// AddToCart inserts a (user, cake) row or increments the existing one.
// Two sessions adding concurrently race on the read-then-write and may lose
// an increment; acceptable for this domain.
func AddToCart(db *gorm.DB, notifier *Notifier, userID string, cakeID uint, qty int) (models.CartItem, error) {
	if qty < 1 {
		return models.CartItem{}, apperr.New(apperr.EINVALID, "quantity must be at least 1")
	}

	var cake models.Cake
	if err := db.First(&cake, cakeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.New(apperr.ENOTFOUND, "cake not found")
		}
		return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to validate cake")
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND cake_id = ?", userID, cakeID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, CakeID: cakeID, Quantity: qty}
		if err := db.Create(&item).Error; err != nil {
			return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to add item to cart")
		}
	case err != nil:
		return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to fetch cart item")
	default:
		item.Quantity += qty
		if err := db.Save(&item).Error; err != nil {
			return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to update cart item")
		}
	}

	publish(db, notifier, userID, "added")
	return item, nil
}

// UpdateQuantity sets the quantity of one of the user's cart rows. Quantity
// zero is not an alias for removal here; callers route that to RemoveItem.
func UpdateQuantity(db *gorm.DB, notifier *Notifier, userID string, itemID uint, qty int) (models.CartItem, error) {
	if qty < 1 {
		return models.CartItem{}, apperr.New(apperr.EINVALID, "quantity must be at least 1")
	}

	var item models.CartItem
	if err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.New(apperr.ENOTFOUND, "cart item not found")
		}
		return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to fetch cart item")
	}

	item.Quantity = qty
	if err := db.Save(&item).Error; err != nil {
		return models.CartItem{}, apperr.New(apperr.ETRANSIENT, "failed to update cart item")
	}

	publish(db, notifier, userID, "updated")
	return item, nil
}

// RemoveItem deletes one of the user's cart rows unconditionally.
func RemoveItem(db *gorm.DB, notifier *Notifier, userID string, itemID uint) error {
	result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return apperr.New(apperr.ETRANSIENT, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.ENOTFOUND, "cart item not found")
	}

	publish(db, notifier, userID, "removed")
	return nil
}

// ListItems returns the user's cart resolved against the catalog. Rows whose
// cake has since been deleted are skipped rather than erroring the whole cart.
func ListItems(db *gorm.DB, userID string) ([]CartLine, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, apperr.New(apperr.ETRANSIENT, "failed to fetch cart items")
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		var cake models.Cake
		if err := db.First(&cake, item.CakeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, apperr.New(apperr.ETRANSIENT, "failed to resolve cart item")
		}
		lines = append(lines, CartLine{
			ID:        item.ID,
			CakeID:    cake.ID,
			CakeName:  cake.Name,
			CakeImage: catalogControllers.PrimaryImageURL(db, cake.ID),
			Price:     cake.Price,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// Clear deletes every cart row of the user. Order placement calls this after
// its transaction commits.
func Clear(db *gorm.DB, notifier *Notifier, userID string) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return apperr.New(apperr.ETRANSIENT, "failed to clear cart")
	}
	if notifier != nil {
		notifier.Publish(Event{UserID: userID, Action: "cleared", ItemCount: 0})
	}
	return nil
}

// Total sums current price x quantity across the lines. This is the live cart
// total, distinct from the frozen total an order records at placement.
func Total(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func publish(db *gorm.DB, notifier *Notifier, userID, action string) {
	if notifier == nil {
		return
	}
	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to count cart items for event")
		return
	}
	notifier.Publish(Event{UserID: userID, Action: action, ItemCount: int(count)})
}
