package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting admin review
	OrderStatusAccepted  OrderStatus = "accepted"  // admin confirmed the order
	OrderStatusDeclined  OrderStatus = "declined"  // admin rejected the order
	OrderStatusDelivered OrderStatus = "delivered" // display-only, no enforced inbound transition
)

// ParseOrderStatus maps a request string to a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDeclined, OrderStatusDelivered:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("invalid order status %q", s)
	}
}

// CanTransition reports whether an order may move from its current status to
// next. Only pending orders move at all: pending->accepted and
// pending->declined. Re-accepting an accepted order (or any other pair) is
// rejected rather than treated as a no-op.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return next == OrderStatusAccepted || next == OrderStatusDeclined
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	PhoneNumber     string          `gorm:"not null" json:"phone_number"`
	Notes           string          `json:"notes,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem carries the cake's price (and display name/image) copied at
// placement time. Later edits to the cake never touch these rows.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	CakeID    uint            `json:"cake_id"`
	CakeName  string          `json:"cake_name"`
	CakeImage string          `json:"cake_image"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}
