package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.CatalogItem, error) {
	item, err := s.Repo.GetCatalogItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: catalog item %d", ErrNotFound, id)
		}
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context, filter repo.CatalogFilter, offset, limit int) (int64, []models.CatalogItem, error) {
	return s.Repo.ListCatalogItems(ctx, filter, offset, limit)
}

func (s *CatalogService) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	return s.Repo.CreateCatalogItem(ctx, item)
}

// CatalogItemPatch is a partial update; nil fields are left as stored.
type CatalogItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	PictureURI  *string  `json:"picture_uri"`
	BrandID     *uint    `json:"catalog_brand_id"`
	TypeID      *uint    `json:"catalog_type_id"`
}

func (s *CatalogService) PatchItem(ctx context.Context, id uint, patch CatalogItemPatch) (*models.CatalogItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.PictureURI != nil {
		item.PictureURI = *patch.PictureURI
	}
	if patch.BrandID != nil {
		item.CatalogBrandID = *patch.BrandID
	}
	if patch.TypeID != nil {
		item.CatalogTypeID = *patch.TypeID
	}

	if err := s.validateItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveCatalogItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCatalogItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: catalog item %d", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.CatalogBrand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) ListTypes(ctx context.Context) ([]models.CatalogType, error) {
	return s.Repo.ListTypes(ctx)
}

func (s *CatalogService) validateItem(ctx context.Context, item *models.CatalogItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if _, err := s.Repo.GetBrand(ctx, item.CatalogBrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown brand %d", ErrValidation, item.CatalogBrandID)
		}
		return err
	}
	if _, err := s.Repo.GetType(ctx, item.CatalogTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown type %d", ErrValidation, item.CatalogTypeID)
		}
		return err
	}
	return nil
}
