// Package store defines the persistence contracts shared by every backend.
package store

import (
	"context"
	"errors"

	"github.com/Kariqs/kartdaily-api/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	// Find matches keyword case-insensitively against the product name and
	// returns one page plus the total number of matches.
	Find(ctx context.Context, keyword string, limit, skip int64) ([]models.Product, int64, error)
	Top(ctx context.Context, limit int64) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderStore persists orders. Update replaces the whole order; concurrent
// writers are not detected and the last one wins.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByID attaches the owner's id, name and email.
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	// FindAll attaches the owner's id and name to every order.
	FindAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Store is a connected backend.
type Store interface {
	Users() UserStore
	Products() ProductStore
	Orders() OrderStore
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}
