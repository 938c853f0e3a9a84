package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
)

type BasketService struct {
	Repo *repo.GormRepo
}

// GetOrCreateBasket returns the buyer's basket, creating and persisting an
// empty one when none exists yet. The buyer_key unique index makes the
// create race safe: the loser re-reads the winner's basket.
func (s *BasketService) GetOrCreateBasket(ctx context.Context, buyerKey string) (*models.Basket, error) {
	basket, err := s.Repo.GetBasketByBuyer(ctx, buyerKey)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	basket = &models.Basket{BuyerKey: buyerKey}
	if err := s.Repo.CreateBasket(ctx, basket); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Repo.GetBasketByBuyer(ctx, buyerKey)
		}
		return nil, err
	}
	return basket, nil
}

func (s *BasketService) AddItemToBasket(ctx context.Context, buyerKey string, catalogItemID uint, price float64, quantity int) (*models.Basket, error) {
	if catalogItemID == 0 {
		return nil, fmt.Errorf("%w: catalog item id required", ErrValidation)
	}

	basket, err := s.GetOrCreateBasket(ctx, buyerKey)
	if err != nil {
		return nil, err
	}

	if err := basket.AddItem(catalogItemID, price, quantity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.Repo.SaveBasket(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// SetQuantities applies the line-id to quantity map, prunes zeroed lines and
// persists. A basket that does not exist, or belongs to another buyer, is
// reported as not found.
func (s *BasketService) SetQuantities(ctx context.Context, basketID uint, buyerKey string, quantities map[uint]int) (*models.Basket, error) {
	basket, err := s.Repo.GetBasketByID(ctx, basketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: basket %d", ErrNotFound, basketID)
		}
		return nil, err
	}
	if basket.BuyerKey != buyerKey {
		return nil, fmt.Errorf("%w: basket %d", ErrNotFound, basketID)
	}

	l := logging.FromContext(ctx)
	for idx := range basket.Items {
		if quantity, ok := quantities[basket.Items[idx].ID]; ok {
			l.Info("updating basket line quantity", "line_id", basket.Items[idx].ID, "quantity", quantity)
			if err := basket.Items[idx].SetQuantity(quantity); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
	}
	basket.RemoveEmptyItems()

	if err := s.Repo.SaveBasket(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// TransferBasket merges the anonymous buyer's lines into the authenticated
// buyer's basket (quantities add) and deletes the anonymous basket. Missing
// source is a no-op.
func (s *BasketService) TransferBasket(ctx context.Context, fromBuyerKey, toBuyerKey string) error {
	source, err := s.Repo.GetBasketByBuyer(ctx, fromBuyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	target, err := s.GetOrCreateBasket(ctx, toBuyerKey)
	if err != nil {
		return err
	}

	for _, item := range source.Items {
		if err := target.AddItem(item.CatalogItemID, item.UnitPrice, item.Quantity); err != nil {
			return err
		}
	}

	if err := s.Repo.SaveBasket(ctx, target); err != nil {
		return err
	}
	return s.Repo.DeleteBasket(ctx, source.ID)
}

func (s *BasketService) DeleteBasket(ctx context.Context, basketID uint) error {
	err := s.Repo.DeleteBasket(ctx, basketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: basket %d", ErrNotFound, basketID)
	}
	return err
}
