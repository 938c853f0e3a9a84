package service

import (
	"context"

	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/transport"
	"github.com/bdmarket/storefront/internal/uricomposer"
	"github.com/bdmarket/storefront/internal/util"
)

// BasketViewService maps a basket aggregate to its response shape, joining
// in current catalog details so the client can show name, picture and the
// live price next to the captured one.
type BasketViewService struct {
	Repo     *repo.GormRepo
	Composer *uricomposer.Composer
}

func (s *BasketViewService) MapBasket(ctx context.Context, basket *models.Basket) (*transport.BasketResponse, error) {
	resp := &transport.BasketResponse{
		ID:       basket.ID,
		BuyerKey: basket.BuyerKey,
		Items:    []transport.BasketItemResponse{},
		Total:    util.Round2(basket.Total()),
	}
	if len(basket.Items) == 0 {
		return resp, nil
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

	for _, line := range basket.Items {
		itemResp := transport.BasketItemResponse{
			ID:            line.ID,
			CatalogItemID: line.CatalogItemID,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
		}
		if catalogItem, ok := byID[line.CatalogItemID]; ok {
			itemResp.ProductName = catalogItem.Name
			itemResp.PictureURL = s.Composer.ComposePicURI(catalogItem.PictureURI)
			itemResp.OldUnitPrice = catalogItem.Price
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp, nil
}
