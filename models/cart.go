package models

import "time"

// CartItem is one pending purchase line. One row per (user, cake) pair is
// enforced by the composite unique index; adding the same cake again
// increments Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_cart_user_cake" json:"user_id"`
	CakeID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_cake" json:"cake_id"`
	Quantity  int       `gorm:"not null" json:"quantity"` // always >= 1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
