package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyAddressField = errors.New("address field is required")
	ErrBadSnapshot       = errors.New("invalid order item snapshot")
)

// Address is a value object owned by exactly one order. Every field except
// State is required.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

func NewAddress(street, city, state, country, zipCode string) (Address, error) {
	for name, v := range map[string]string{
		"street":   street,
		"city":     city,
		"country":  country,
		"zip_code": zipCode,
	} {
		if v == "" {
			return Address{}, fmt.Errorf("%w: %s", ErrEmptyAddressField, name)
		}
	}
	return Address{Street: street, City: city, State: state, Country: country, ZipCode: zipCode}, nil
}

// Order is immutable once created: there is no update or cancellation path.
type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerKey  string      `gorm:"index;not null"           json:"buyer_key"`
	OrderDate time.Time   `gorm:"not null"                 json:"order_date"`
	ShipTo    Address     `gorm:"embedded;embeddedPrefix:ship_" json:"ship_to"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem carries a snapshot of the catalog item at purchase time, so later
// catalog edits never change what the buyer bought.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint    `gorm:"index;not null"           json:"order_id"`
	CatalogItemID uint    `gorm:"not null"                 json:"catalog_item_id"`
	ProductName   string  `gorm:"not null"                 json:"product_name"`
	PictureURI    string  `gorm:"column:picture_uri;not null" json:"picture_uri"`
	UnitPrice     float64 `gorm:"not null"                 json:"unit_price"`
	Quantity      int     `gorm:"not null"                 json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

func NewOrderItem(catalogItemID uint, productName, pictureURI string, unitPrice float64, quantity int) (OrderItem, error) {
	if catalogItemID < 1 {
		return OrderItem{}, fmt.Errorf("%w: catalog item id %d", ErrBadSnapshot, catalogItemID)
	}
	if productName == "" {
		return OrderItem{}, fmt.Errorf("%w: product name is empty", ErrBadSnapshot)
	}
	if pictureURI == "" {
		return OrderItem{}, fmt.Errorf("%w: picture uri is empty", ErrBadSnapshot)
	}
	return OrderItem{
		CatalogItemID: catalogItemID,
		ProductName:   productName,
		PictureURI:    pictureURI,
		UnitPrice:     unitPrice,
		Quantity:      quantity,
	}, nil
}

func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
