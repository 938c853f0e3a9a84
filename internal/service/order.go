package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/uricomposer"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Composer *uricomposer.Composer
}

// CreateOrder converts the buyer's basket into an immutable order. Line
// prices come from the basket (captured at add time), names and pictures are
// snapshotted from the live catalog. The order insert and the basket delete
// share one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, buyerKey string, address models.Address) (*models.Order, error) {
	basket, err := s.Repo.GetBasketByBuyer(ctx, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyBasket
		}
		return nil, err
	}
	if len(basket.Items) == 0 {
		return nil, ErrEmptyBasket
	}

	ids := make([]uint, 0, len(basket.Items))
	for _, item := range basket.Items {
		ids = append(ids, item.CatalogItemID)
	}
	catalogItems, err := s.Repo.ListCatalogItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.CatalogItem, len(catalogItems))
	for _, item := range catalogItems {
		byID[item.ID] = item
	}

	orderItems := make([]models.OrderItem, 0, len(basket.Items))
	for _, line := range basket.Items {
		catalogItem, ok := byID[line.CatalogItemID]
		if !ok {
			// A basket line pointing at a vanished catalog item is data
			// corruption, not a caller mistake.
			return nil, fmt.Errorf("catalog item %d referenced by basket %d does not exist", line.CatalogItemID, basket.ID)
		}
		orderItem, err := models.NewOrderItem(
			catalogItem.ID,
			catalogItem.Name,
			s.Composer.ComposePicURI(catalogItem.PictureURI),
			line.UnitPrice,
			line.Quantity,
		)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}

	order := &models.Order{
		BuyerKey:  buyerKey,
		OrderDate: time.Now().UTC(),
		ShipTo:    address,
		Items:     orderItems,
	}

	if err := s.Repo.PlaceOrder(ctx, order, basket.ID); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order created",
		"order_id", order.ID,
		"buyer_key", buyerKey,
		"item_count", len(order.Items),
		"total", order.Total(),
	)
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, buyerKey string) ([]models.Order, error) {
	return s.Repo.ListOrdersByBuyer(ctx, buyerKey)
}
