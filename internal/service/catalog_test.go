package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
)

func TestCatalogService_CreateCategory_Invalid(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	_, err := svc.CreateCategory(context.Background(), "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.categories)
}

func TestCatalogService_CreateProduct_KeepsDataURL(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	p, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		SubcategoryID: 1,
		Name:          "Shirt",
		Price:         decimal.NewFromInt(500),
		ImageData:     "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", p.MainImage)
	assert.Equal(t, []string{"data:image/png;base64,iVBORw0KGgo="}, p.Images)
}

func TestCatalogService_CreateProduct_DropsNonDataURL(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	p, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		SubcategoryID: 1,
		Name:          "Shirt",
		Price:         decimal.NewFromInt(500),
		ImageData:     "https://example.com/shirt.png",
	})
	require.NoError(t, err)
	assert.Empty(t, p.MainImage)
	assert.Empty(t, p.Images)
}

func TestCatalogService_CreateProduct_Invalid(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:  "",
		Price: decimal.Zero,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Messages, 2)
	assert.Empty(t, store.products)
}

func TestCatalogService_UpdateProduct_PassesFieldsThrough(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	err := svc.UpdateProduct(context.Background(), 1, dto.UpdateProductRequest{
		Name:  "Renamed",
		Price: decimal.NewFromInt(750),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", store.lastUpdate.Name)
	assert.True(t, store.lastUpdate.Price.Equal(decimal.NewFromInt(750)))
	assert.Empty(t, store.lastUpdate.Description)
}
