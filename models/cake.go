package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cake struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Price       decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	Description string           `json:"description"`
	Weight      string           `json:"weight,omitempty"` // e.g. "1.5 kg"
	Servings    int              `json:"servings,omitempty"`
	Categories  []Category       `gorm:"many2many:cake_categories" json:"categories,omitempty"`
	Ingredients []CakeIngredient `gorm:"foreignKey:CakeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Images      []CakeImage      `gorm:"foreignKey:CakeID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CakeImage is one display image of a cake. Position drives gallery order;
// position 0 is the primary image.
type CakeImage struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CakeID   uint   `gorm:"index" json:"cake_id"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

type CakeIngredient struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CakeID uint   `gorm:"index" json:"cake_id"`
	Name   string `gorm:"not null" json:"name"`
}
