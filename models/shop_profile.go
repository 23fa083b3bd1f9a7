package models

import "time"

// ShopProfile is a singleton row. DefaultShopProfile is served whenever the
// table is empty, so the storefront never renders without contact details.
type ShopProfile struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopName     string    `gorm:"not null" json:"shop_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	AboutUs      string    `json:"about_us"`
	FacebookURL  string    `json:"facebook_url"`
	InstagramURL string    `json:"instagram_url"`
	TwitterURL   string    `json:"twitter_url"`
	GithubURL    string    `json:"github_url"`
	LogoURL      string    `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const DefaultLogoURL = "https://api.dicebear.com/7.x/avataaars/svg?seed=cake"

// ShopProfileID pins the singleton row. Every save writes this key, so two
// concurrent first-time saves converge on one row instead of inserting two.
const ShopProfileID uint = 1

// DefaultShopProfile returns the profile used when no row exists yet.
func DefaultShopProfile() ShopProfile {
	return ShopProfile{
		ShopName: "Sweet Delights Bakery",
		Address:  "123 Cake Street, Dessert Town, DT 12345",
		Phone:    "+1 (555) 123-4567",
		Email:    "info@sweetdelightsbakery.com",
		AboutUs: "Sweet Delights Bakery has been serving delicious cakes and pastries since 2010. " +
			"We use only the finest ingredients and traditional baking methods to create memorable desserts for all occasions.",
		FacebookURL:  "https://facebook.com",
		InstagramURL: "https://instagram.com",
		TwitterURL:   "https://twitter.com",
		GithubURL:    "https://github.com",
		LogoURL:      DefaultLogoURL,
	}
}
