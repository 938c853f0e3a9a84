package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/models"
)

// PlaceOrder inserts the order and deletes the source basket in one
// transaction, so a partial failure can never leave both or neither.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order, basketID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return deleteBasketTx(tx, basketID)
	})
}

func (r *GormRepo) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByBuyer(ctx context.Context, buyerKey string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("buyer_key = ?", buyerKey).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
