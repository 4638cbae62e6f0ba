// Package sqlstore is the MySQL backend, built on gorm. Nested order and
// product data live in JSON columns so rows keep the document shape.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	db *gorm.DB
}

func Connect(dsn string) (*DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (d *DB) Users() store.UserStore       { return userRepository{d.db} }
func (d *DB) Products() store.ProductStore { return productRepository{d.db} }
func (d *DB) Orders() store.OrderStore     { return orderRepository{d.db} }

func (d *DB) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(&userRow{}, &productRow{}, &orderRow{})
}

func (d *DB) Close(context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error, action string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("failed to %s: %w", action, store.ErrDuplicate)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type userRepository struct{ db *gorm.DB }

func (r userRepository) Create(ctx context.Context, user *models.User) error {
	assignID(&user.ID)
	row := toUserRow(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "create user")
	}
	*user = row.model()
	return nil
}

func (r userRepository) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		return nil, translate(err, "get user")
	}
	user := row.model()
	return &user, nil
}

func (r userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, translate(err, "list users")
	}
	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].model())
	}
	return users, nil
}

func (r userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&userRow{ID: user.ID}).
		Select("name", "email", "password", "is_admin", "updated_at").
		Updates(toUserRow(user))
	if result.Error != nil {
		return translate(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r userRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&userRow{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type productRepository struct{ db *gorm.DB }

func (r productRepository) Create(ctx context.Context, product *models.Product) error {
	assignID(&product.ID)
	row := toProductRow(product)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "create product")
	}
	*product = row.model()
	return nil
}

func (r productRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "get product")
	}
	product := row.model()
	return &product, nil
}

func productModels(rows []productRow) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].model())
	}
	return products
}

func (r productRepository) Find(ctx context.Context, keyword string, limit, skip int64) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&productRow{})
	if keyword != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count products")
	}

	var rows []productRow
	query = query.Order("created_at asc").Offset(int(skip))
	if limit > 0 {
		query = query.Limit(int(limit))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, translate(err, "list products")
	}
	return productModels(rows), total, nil
}

func (r productRepository) Top(ctx context.Context, limit int64) ([]models.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Order("rating desc").Limit(int(limit)).Find(&rows).Error; err != nil {
		return nil, translate(err, "list top products")
	}
	return productModels(rows), nil
}

func (r productRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&productRow{ID: product.ID}).
		Select("*").Omit("id", "created_at").
		Updates(toProductRow(product))
	if result.Error != nil {
		return translate(result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r productRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&productRow{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type orderRepository struct{ db *gorm.DB }

func (r orderRepository) Create(ctx context.Context, order *models.Order) error {
	assignID(&order.ID)
	row := toOrderRow(order)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "create order")
	}
	*order = row.model()
	return nil
}

// owners loads the owning users for orders, keyed by id.
func (r orderRepository) owners(ctx context.Context, orders []models.Order, withEmail bool) error {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.UserID)
	}
	if len(ids) == 0 {
		return nil
	}

	var rows []userRow
	if err := r.db.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return translate(err, "load order owners")
	}

	byID := make(map[string]userRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for i := range orders {
		row, ok := byID[orders[i].UserID]
		if !ok {
			continue
		}
		owner := &models.OrderOwner{ID: row.ID, Name: row.Name}
		if withEmail {
			owner.Email = row.Email
		}
		orders[i].Owner = owner
	}
	return nil
}

func (r orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var row orderRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "get order")
	}
	orders := []models.Order{row.model()}
	if err := r.owners(ctx, orders, true); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r orderRepository) find(ctx context.Context, query *gorm.DB) ([]models.Order, error) {
	var rows []orderRow
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, translate(err, "list orders")
	}
	orders := make([]models.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].model())
	}
	return orders, nil
}

func (r orderRepository) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	orders, err := r.find(ctx, r.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if err := r.owners(ctx, orders, false); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r orderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&orderRow{ID: order.ID}).
		Select("*").Omit("id", "created_at").
		Updates(toOrderRow(order))
	if result.Error != nil {
		return translate(result.Error, "update order")
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r orderRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&orderRow{})
	if result.Error != nil {
		return 0, translate(result.Error, "delete orders")
	}
	return result.RowsAffected, nil
}
