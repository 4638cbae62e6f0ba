package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/cache"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	cached      []models.Product
	hits        int
	invalidated int
}

func (c *countingCache) GetTop(context.Context) ([]models.Product, error) {
	if c.cached == nil {
		return nil, cache.ErrCacheMiss
	}
	c.hits++
	return c.cached, nil
}

func (c *countingCache) SetTop(_ context.Context, products []models.Product) error {
	c.cached = products
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.cached = nil
	c.invalidated++
	return nil
}

func seedProducts(t *testing.T, db *memstore.DB, names []string, ratings []float64) {
	t.Helper()
	for i, name := range names {
		product := &models.Product{Name: name, Price: float64(10 * (i + 1))}
		if i < len(ratings) {
			product.Rating = ratings[i]
		}
		require.NoError(t, db.Products().Create(context.Background(), product))
	}
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	svc := NewProductService(db.Products(), nil)

	names := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		names = append(names, fmt.Sprintf("Phone %d", i))
	}
	seedProducts(t, db, append(names, "Camera"), nil)

	page, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Products, PageSize)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)

	page, err = svc.List(ctx, "phone", 3)
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 3, page.Pages)

	page, err = svc.List(ctx, "CAMERA", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Camera", page.Products[0].Name)

	page, err = svc.List(ctx, "tablet", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Products)
	assert.Equal(t, 0, page.Pages)
}

func TestTopProductsUsesCache(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	productCache := &countingCache{}
	svc := NewProductService(db.Products(), productCache)

	seedProducts(t, db, []string{"A", "B", "C", "D"}, []float64{2, 5, 3, 4})

	top, err := svc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, TopLimit)
	assert.Equal(t, "B", top[0].Name)
	assert.Equal(t, "D", top[1].Name)
	assert.Equal(t, "C", top[2].Name)
	assert.Equal(t, 0, productCache.hits)

	_, err = svc.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, productCache.hits)

	_, err = svc.CreateSample(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, productCache.invalidated)
	assert.Nil(t, productCache.cached)
}

func TestCreateSampleAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	svc := NewProductService(db.Products(), cache.Noop{})

	product, err := svc.CreateSample(ctx, "admin-id")
	require.NoError(t, err)
	assert.Equal(t, "Sample name", product.Name)
	assert.Equal(t, "admin-id", product.UserID)
	assert.Zero(t, product.Price)

	updated, err := svc.Update(ctx, product.ID, models.ProductUpdate{Name: "Airpods", Price: 89.99})
	require.NoError(t, err)
	assert.Equal(t, "Airpods", updated.Name)
	assert.Equal(t, 89.99, updated.Price)
	assert.Equal(t, "Sample brand", updated.Brand)

	_, err = svc.Update(ctx, product.ID, models.ProductUpdate{Price: -5})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = svc.Update(ctx, "missing", models.ProductUpdate{Name: "x"})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	svc := NewProductService(db.Products(), nil)

	product, err := svc.CreateSample(ctx, "admin-id")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err = svc.Get(ctx, product.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Product not found", err.Error())

	assert.True(t, apperrors.Is(svc.Delete(ctx, product.ID), apperrors.KindNotFound))
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	svc := NewProductService(db.Products(), nil)
	svc.now = fixedClock

	product, err := svc.CreateSample(ctx, "admin-id")
	require.NoError(t, err)

	jane := &models.User{ID: "u1", Name: "Jane"}
	john := &models.User{ID: "u2", Name: "John"}

	require.NoError(t, svc.AddReview(ctx, product.ID, jane, models.ReviewInput{Rating: 5, Comment: "Great"}))
	require.NoError(t, svc.AddReview(ctx, product.ID, john, models.ReviewInput{Rating: 2}))

	stored, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NumReviews)
	assert.Equal(t, 3.5, stored.Rating)
	require.Len(t, stored.Reviews, 2)
	assert.Equal(t, "Jane", stored.Reviews[0].Name)
	assert.Equal(t, fixedNow, stored.Reviews[0].CreatedAt)

	err = svc.AddReview(ctx, product.ID, jane, models.ReviewInput{Rating: 1})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Equal(t, "Product already reviewed", err.Error())

	err = svc.AddReview(ctx, "missing", jane, models.ReviewInput{Rating: 4})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
