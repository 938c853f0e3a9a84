package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/models"
)

func (r *GormRepo) GetBasketByBuyer(ctx context.Context, buyerKey string) (*models.Basket, error) {
	var basket models.Basket
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("buyer_key = ?", buyerKey).
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *GormRepo) GetBasketByID(ctx context.Context, id uint) (*models.Basket, error) {
	var basket models.Basket
	err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&basket, id).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *GormRepo) CreateBasket(ctx context.Context, basket *models.Basket) error {
	return r.DB.WithContext(ctx).Create(basket).Error
}

// SaveBasket persists the aggregate: pruned lines are deleted, changed lines
// updated and new lines inserted, all in one transaction.
func (r *GormRepo) SaveBasket(ctx context.Context, basket *models.Basket) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		kept := make([]uint, 0, len(basket.Items))
		for _, item := range basket.Items {
			if item.ID != 0 {
				kept = append(kept, item.ID)
			}
		}

		q := tx.Where("basket_id = ?", basket.ID)
		if len(kept) > 0 {
			q = q.Where("id NOT IN ?", kept)
		}
		if err := q.Delete(&models.BasketItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(basket).Error
	})
}

func (r *GormRepo) DeleteBasket(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteBasketTx(tx, id)
	})
}

func deleteBasketTx(tx *gorm.DB, id uint) error {
	if err := tx.Where("basket_id = ?", id).Delete(&models.BasketItem{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&models.Basket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
