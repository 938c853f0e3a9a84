package models

import (
	"errors"
	"fmt"
)

// ErrNegativeQuantity is returned by every quantity mutation: a line may be
// set to zero (marking it for pruning) but never below.
var ErrNegativeQuantity = errors.New("quantity cannot be negative")

// Basket is the aggregate root for one buyer's shopping basket. It holds at
// most one line per catalog item; adding an existing item increases the
// quantity of that line instead of appending a duplicate.
type Basket struct {
	ID       uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerKey string       `gorm:"uniqueIndex;not null"     json:"buyer_key"`
	Items    []BasketItem `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Basket) TableName() string { return "baskets" }

type BasketItem struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BasketID      uint    `gorm:"index;not null"           json:"basket_id"`
	CatalogItemID uint    `gorm:"not null"                 json:"catalog_item_id"`
	UnitPrice     float64 `gorm:"not null"                 json:"unit_price"`
	Quantity      int     `gorm:"not null"                 json:"quantity"`
}

func (BasketItem) TableName() string { return "basket_items" }

func (i *BasketItem) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, quantity)
	}
	i.Quantity = quantity
	return nil
}

func (i *BasketItem) AddQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, quantity)
	}
	i.Quantity += quantity
	return nil
}

// AddItem merges quantity into an existing line for the catalog item, or
// appends a new line capturing the given unit price. The price on an
// existing line is left untouched.
func (b *Basket) AddItem(catalogItemID uint, price float64, quantity int) error {
	for idx := range b.Items {
		if b.Items[idx].CatalogItemID == catalogItemID {
			return b.Items[idx].AddQuantity(quantity)
		}
	}

	item := BasketItem{
		BasketID:      b.ID,
		CatalogItemID: catalogItemID,
		UnitPrice:     price,
	}
	if err := item.SetQuantity(quantity); err != nil {
		return err
	}
	b.Items = append(b.Items, item)
	return nil
}

// RemoveEmptyItems drops every line whose quantity is zero. Callers batch
// quantity updates first and prune once at the end.
func (b *Basket) RemoveEmptyItems() {
	kept := b.Items[:0]
	for _, item := range b.Items {
		if item.Quantity != 0 {
			kept = append(kept, item)
		}
	}
	b.Items = kept
}

// TotalItems is the sum of line quantities.
func (b *Basket) TotalItems() int {
	total := 0
	for _, item := range b.Items {
		total += item.Quantity
	}
	return total
}

// Total is the monetary sum over lines; rounding happens at the DTO boundary.
func (b *Basket) Total() float64 {
	var total float64
	for _, item := range b.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
