// Package cache keeps the top-rated product list in Redis.
package cache

import (
	"context"
	"errors"

	"github.com/Kariqs/kartdaily-api/models"
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache interface {
	GetTop(ctx context.Context) ([]models.Product, error)
	SetTop(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

// Noop is used when no Redis address is configured; every read misses.
type Noop struct{}

func (Noop) GetTop(context.Context) ([]models.Product, error) { return nil, ErrCacheMiss }
func (Noop) SetTop(context.Context, []models.Product) error   { return nil }
func (Noop) Invalidate(context.Context) error                 { return nil }
