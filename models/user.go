package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `gorm:"not null" json:"full_name"`
	Address      string     `json:"address"`
	PhoneNumber  string     `json:"phone_number"`
	Gender       string     `json:"gender"`
	Role         string     `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CartItems    []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart_items,omitempty"`
	Orders       []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
