package models

import "time"

type CatalogItem struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string  `gorm:"not null"                 json:"name"`
	Description    string  `gorm:"not null"                 json:"description"`
	Price          float64 `gorm:"not null"                 json:"price"`
	PictureURI     string  `gorm:"column:picture_uri"       json:"picture_uri"`
	CatalogBrandID uint    `gorm:"index;not null"           json:"catalog_brand_id"`
	CatalogTypeID  uint    `gorm:"index;not null"           json:"catalog_type_id"`
}

type CatalogBrand struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand string `gorm:"unique;not null"          json:"brand"`
}

type CatalogType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Type string `gorm:"unique;not null"          json:"type"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&CatalogBrand{},
		&CatalogType{},
		&CatalogItem{},
		&User{},
		&RefreshToken{},
		&Basket{},
		&BasketItem{},
		&Order{},
		&OrderItem{},
	}
}
