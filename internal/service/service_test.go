package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/uricomposer"
)

var dbSeq atomic.Int64

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:storefront_svc_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return &repo.GormRepo{DB: db}
}

func seedCatalog(t *testing.T, r *repo.GormRepo) []models.CatalogItem {
	t.Helper()
	ctx := context.Background()

	brand := models.CatalogBrand{Brand: "Acme"}
	typ := models.CatalogType{Type: "Mug"}
	require.NoError(t, r.DB.Create(&brand).Error)
	require.NoError(t, r.DB.Create(&typ).Error)

	items := []models.CatalogItem{
		{Name: "Acme Mug", Description: "A mug", Price: 10.00, PictureURI: "images/1.png", CatalogBrandID: brand.ID, CatalogTypeID: typ.ID},
		{Name: "Acme Shirt", Description: "A shirt", Price: 19.50, PictureURI: "images/2.png", CatalogBrandID: brand.ID, CatalogTypeID: typ.ID},
	}
	for i := range items {
		require.NoError(t, r.CreateCatalogItem(ctx, &items[i]))
	}
	return items
}

func newBasketService(t *testing.T) (*BasketService, *repo.GormRepo) {
	r := newTestRepo(t)
	return &BasketService{Repo: r}, r
}

func newOrderService(t *testing.T) (*OrderService, *BasketService, *repo.GormRepo) {
	r := newTestRepo(t)
	return &OrderService{Repo: r, Composer: uricomposer.New("http://cdn.test")},
		&BasketService{Repo: r},
		r
}
