package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBasketService_GetOrCreateBasket(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	basket, err := svc.GetOrCreateBasket(ctx, "anon-123")
	require.NoError(t, err)
	require.NotZero(t, basket.ID, "created basket must have an assigned identity")
	assert.Empty(t, basket.Items)

	again, err := svc.GetOrCreateBasket(ctx, "anon-123")
	require.NoError(t, err)
	assert.Equal(t, basket.ID, again.ID)

	stored, err := repo.GetBasketByBuyer(ctx, "anon-123")
	require.NoError(t, err)
	assert.Equal(t, basket.ID, stored.ID)
}

func TestBasketService_AddItemToBasket_MergesLines(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	_, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)
	_, err = svc.AddItemToBasket(ctx, "anon-123", 7, 11.00, 3)
	require.NoError(t, err)

	basket, err := repo.GetBasketByBuyer(ctx, "anon-123")
	require.NoError(t, err)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 5, basket.Items[0].Quantity)
	assert.Equal(t, 10.00, basket.Items[0].UnitPrice)
}

func TestBasketService_AddItemToBasket_RejectsNegativeQuantity(t *testing.T) {
	t.Parallel()
	svc, _ := newBasketService(t)
	ctx := context.Background()

	_, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, -2)
	require.ErrorIs(t, err, ErrValidation)
}

func TestBasketService_SetQuantities_PrunesZeroLines(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	_, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)
	basket, err := svc.AddItemToBasket(ctx, "anon-123", 8, 5.00, 1)
	require.NoError(t, err)
	require.Len(t, basket.Items, 2)

	var lineSeven, lineEight uint
	for _, item := range basket.Items {
		switch item.CatalogItemID {
		case 7:
			lineSeven = item.ID
		case 8:
			lineEight = item.ID
		}
	}

	updated, err := svc.SetQuantities(ctx, basket.ID, "anon-123", map[uint]int{
		lineSeven: 0,
		lineEight: 4,
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, uint(8), updated.Items[0].CatalogItemID)
	assert.Equal(t, 4, updated.Items[0].Quantity)

	stored, err := repo.GetBasketByID(ctx, basket.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1, "pruned line must be gone from the store")
}

func TestBasketService_SetQuantities_UnknownBasket(t *testing.T) {
	t.Parallel()
	svc, _ := newBasketService(t)

	_, err := svc.SetQuantities(context.Background(), 9999, "anon-123", map[uint]int{1: 2})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBasketService_SetQuantities_OtherBuyersBasketLooksMissing(t *testing.T) {
	t.Parallel()
	svc, _ := newBasketService(t)
	ctx := context.Background()

	basket, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)

	_, err = svc.SetQuantities(ctx, basket.ID, "someone-else", map[uint]int{basket.Items[0].ID: 0})
	require.ErrorIs(t, err, ErrNotFound)

	unchanged, err := svc.Repo.GetBasketByID(ctx, basket.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Items[0].Quantity)
}

func TestBasketService_SetQuantities_RejectsNegative(t *testing.T) {
	t.Parallel()
	svc, _ := newBasketService(t)
	ctx := context.Background()

	basket, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)

	_, err = svc.SetQuantities(ctx, basket.ID, "anon-123", map[uint]int{basket.Items[0].ID: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestBasketService_TransferBasket_MergesQuantities(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	// anonymous basket: item 7 x2; target basket: item 7 x1
	_, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)
	_, err = svc.AddItemToBasket(ctx, "alice", 7, 10.00, 1)
	require.NoError(t, err)

	require.NoError(t, svc.TransferBasket(ctx, "anon-123", "alice"))

	target, err := repo.GetBasketByBuyer(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, target.Items, 1)
	assert.Equal(t, 3, target.Items[0].Quantity)

	_, err = repo.GetBasketByBuyer(ctx, "anon-123")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "anonymous basket must be deleted")
}

func TestBasketService_TransferBasket_CreatesTargetWhenAbsent(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	_, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)

	require.NoError(t, svc.TransferBasket(ctx, "anon-123", "bob"))

	target, err := repo.GetBasketByBuyer(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, target.Items, 1)
	assert.Equal(t, 2, target.Items[0].Quantity)
	assert.Equal(t, 10.00, target.Items[0].UnitPrice)
}

func TestBasketService_TransferBasket_NoSourceIsNoop(t *testing.T) {
	t.Parallel()
	svc, _ := newBasketService(t)

	require.NoError(t, svc.TransferBasket(context.Background(), "ghost", "alice"))
}

func TestBasketService_DeleteBasket(t *testing.T) {
	t.Parallel()
	svc, repo := newBasketService(t)
	ctx := context.Background()

	basket, err := svc.AddItemToBasket(ctx, "anon-123", 7, 10.00, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBasket(ctx, basket.ID))
	_, err = repo.GetBasketByBuyer(ctx, "anon-123")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteBasket(ctx, basket.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
