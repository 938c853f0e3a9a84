package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/models"
)

// CatalogFilter narrows a catalog listing; zero values mean "any".
type CatalogFilter struct {
	BrandID uint
	TypeID  uint
}

func (r *GormRepo) GetCatalogItem(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListCatalogItems(ctx context.Context, filter CatalogFilter, offset, limit int) (int64, []models.CatalogItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.CatalogItem{})
	if filter.BrandID != 0 {
		q = q.Where("catalog_brand_id = ?", filter.BrandID)
	}
	if filter.TypeID != 0 {
		q = q.Where("catalog_type_id = ?", filter.TypeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.CatalogItem
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ListCatalogItemsByIDs(ctx context.Context, ids []uint) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCatalogItem(ctx context.Context, item *models.CatalogItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveCatalogItem(ctx context.Context, item *models.CatalogItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCatalogItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.CatalogItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListBrands(ctx context.Context) ([]models.CatalogBrand, error) {
	var brands []models.CatalogBrand
	if err := r.DB.WithContext(ctx).Order("brand ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) ListTypes(ctx context.Context) ([]models.CatalogType, error) {
	var types []models.CatalogType
	if err := r.DB.WithContext(ctx).Order("type ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormRepo) GetBrand(ctx context.Context, id uint) (*models.CatalogBrand, error) {
	var brand models.CatalogBrand
	if err := r.DB.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) GetType(ctx context.Context, id uint) (*models.CatalogType, error) {
	var typ models.CatalogType
	if err := r.DB.WithContext(ctx).First(&typ, id).Error; err != nil {
		return nil, err
	}
	return &typ, nil
}
