// Package memstore keeps everything in process memory. It backs DB_DRIVER=memory
// and the service tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/google/uuid"
)

type DB struct {
	mu       sync.RWMutex
	users    map[string]models.User
	products map[string]models.Product
	orders   map[string]models.Order
}

func New() *DB {
	return &DB{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		orders:   make(map[string]models.Order),
	}
}

func (db *DB) Users() store.UserStore       { return userRepository{db} }
func (db *DB) Products() store.ProductStore { return productRepository{db} }
func (db *DB) Orders() store.OrderStore     { return orderRepository{db} }

func (db *DB) Migrate(context.Context) error { return nil }
func (db *DB) Close(context.Context) error   { return nil }

func newID() string {
	return uuid.NewString()
}

func stamp(id *string, createdAt, updatedAt *time.Time) {
	now := time.Now()
	if *id == "" {
		*id = newID()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

type userRepository struct{ db *DB }

func (r userRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("failed to create user: %w", store.ErrDuplicate)
		}
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	r.db.users[user.ID] = *user
	return nil
}

func (r userRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (r userRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r userRepository) FindAll(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]models.User, 0, len(r.db.users))
	for _, user := range r.db.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r userRepository) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range r.db.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("failed to update user: %w", store.ErrDuplicate)
		}
	}
	user.UpdatedAt = time.Now()
	r.db.users[user.ID] = *user
	return nil
}

func (r userRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

type productRepository struct{ db *DB }

func copyProduct(p models.Product) models.Product {
	p.Reviews = append([]models.Review(nil), p.Reviews...)
	return p
}

func (r productRepository) Create(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stamp(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	r.db.products[product.ID] = copyProduct(*product)
	return nil
}

func (r productRepository) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	product, ok := r.db.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	product = copyProduct(product)
	return &product, nil
}

func (r productRepository) sorted(less func(a, b models.Product) bool) []models.Product {
	products := make([]models.Product, 0, len(r.db.products))
	for _, product := range r.db.products {
		products = append(products, copyProduct(product))
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	return products
}

func (r productRepository) Find(_ context.Context, keyword string, limit, skip int64) ([]models.Product, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := r.sorted(func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) })
	keyword = strings.ToLower(keyword)

	matched := make([]models.Product, 0, len(all))
	for _, product := range all {
		if keyword == "" || strings.Contains(strings.ToLower(product.Name), keyword) {
			matched = append(matched, product)
		}
	}

	total := int64(len(matched))
	if skip >= total {
		return []models.Product{}, total, nil
	}
	end := total
	if limit > 0 && skip+limit < total {
		end = skip + limit
	}
	return matched[skip:end], total, nil
}

func (r productRepository) Top(_ context.Context, limit int64) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	products := r.sorted(func(a, b models.Product) bool { return a.Rating > b.Rating })
	if limit > 0 && int64(len(products)) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (r productRepository) Update(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[product.ID]; !ok {
		return store.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	r.db.products[product.ID] = copyProduct(*product)
	return nil
}

func (r productRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

type orderRepository struct{ db *DB }

func copyOrder(o models.Order) models.Order {
	o.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	if o.PaymentResult != nil {
		result := *o.PaymentResult
		o.PaymentResult = &result
	}
	o.Owner = nil
	return o
}

func (r orderRepository) owner(userID string, withEmail bool) *models.OrderOwner {
	user, ok := r.db.users[userID]
	if !ok {
		return nil
	}
	owner := &models.OrderOwner{ID: user.ID, Name: user.Name}
	if withEmail {
		owner.Email = user.Email
	}
	return owner
}

func (r orderRepository) Create(_ context.Context, order *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stamp(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	r.db.orders[order.ID] = copyOrder(*order)
	return nil
}

func (r orderRepository) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	order, ok := r.db.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order = copyOrder(order)
	order.Owner = r.owner(order.UserID, true)
	return &order, nil
}

func (r orderRepository) list(match func(models.Order) bool, withOwner bool) []models.Order {
	orders := make([]models.Order, 0)
	for _, order := range r.db.orders {
		if !match(order) {
			continue
		}
		order = copyOrder(order)
		if withOwner {
			order.Owner = r.owner(order.UserID, false)
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders
}

func (r orderRepository) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.list(func(o models.Order) bool { return o.UserID == userID }, false), nil
}

func (r orderRepository) FindAll(_ context.Context) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.list(func(models.Order) bool { return true }, true), nil
}

func (r orderRepository) Update(_ context.Context, order *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.orders[order.ID]; !ok {
		return store.ErrNotFound
	}
	order.UpdatedAt = time.Now()
	r.db.orders[order.ID] = copyOrder(*order)
	return nil
}

func (r orderRepository) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var deleted int64
	for id, order := range r.db.orders {
		if order.UserID == userID {
			delete(r.db.orders, id)
			deleted++
		}
	}
	return deleted, nil
}
