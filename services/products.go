package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/cache"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
)

const (
	PageSize = 3
	TopLimit = 3

	msgProductNotFound = "Product not found"
	msgAlreadyReviewed = "Product already reviewed"
)

type ProductService struct {
	products store.ProductStore
	cache    cache.ProductCache
	now      func() time.Time
}

func NewProductService(products store.ProductStore, productCache cache.ProductCache) *ProductService {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return &ProductService{products: products, cache: productCache, now: time.Now}
}

func (s *ProductService) notFound(err error, action string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(msgProductNotFound)
	}
	return apperrors.Internal("Failed to "+action, err)
}

// invalidate drops the cached top list. A stale cache is not worth failing a write.
func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Println("Failed to invalidate product cache:", err)
	}
}

// List returns one page of products whose name contains keyword, ignoring
// case. Pages are numbered from 1; anything lower is treated as 1.
func (s *ProductService) List(ctx context.Context, keyword string, page int) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, total, err := s.products.Find(ctx, keyword, PageSize, int64(PageSize*(page-1)))
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch products", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return &models.ProductPage{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(total) / PageSize)),
	}, nil
}

func (s *ProductService) Top(ctx context.Context) ([]models.Product, error) {
	products, err := s.cache.GetTop(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Println("Product cache read failed:", err)
	}

	products, err = s.products.Top(ctx, TopLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch top products", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	if err := s.cache.SetTop(ctx, products); err != nil {
		log.Println("Product cache write failed:", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, "fetch product")
	}
	return product, nil
}

// CreateSample stores a placeholder product owned by userID for an admin to edit.
func (s *ProductService) CreateSample(ctx context.Context, userID string) (*models.Product, error) {
	product := &models.Product{
		UserID:      userID,
		Name:        "Sample name",
		Image:       "/images/sample.jpg",
		Brand:       "Sample brand",
		Category:    "Sample category",
		Description: "Sample description",
		Reviews:     []models.Review{},
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to create product", err)
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if update.Price < 0 || update.CountInStock < 0 {
		return nil, apperrors.Validation("Price and stock must not be negative")
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		product.Name = update.Name
	}
	if update.Price != 0 {
		product.Price = update.Price
	}
	if update.Image != "" {
		product.Image = update.Image
	}
	if update.Brand != "" {
		product.Brand = update.Brand
	}
	if update.Category != "" {
		product.Category = update.Category
	}
	if update.Description != "" {
		product.Description = update.Description
	}
	if update.CountInStock != 0 {
		product.CountInStock = update.CountInStock
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.notFound(err, "update product")
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return s.notFound(err, "delete product")
	}
	s.invalidate(ctx)
	return nil
}

// AddReview appends the user's review and recomputes the mean rating. Each user
// may review a product once.
func (s *ProductService) AddReview(ctx context.Context, id string, user *models.User, input models.ReviewInput) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, review := range product.Reviews {
		if review.UserID == user.ID {
			return apperrors.Validation(msgAlreadyReviewed)
		}
	}

	product.Reviews = append(product.Reviews, models.Review{
		Name:      user.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		UserID:    user.ID,
		CreatedAt: s.now(),
	})

	var sum float64
	for _, review := range product.Reviews {
		sum += review.Rating
	}
	product.NumReviews = len(product.Reviews)
	product.Rating = sum / float64(len(product.Reviews))

	if err := s.products.Update(ctx, product); err != nil {
		return s.notFound(err, "save review")
	}
	s.invalidate(ctx)
	return nil
}
