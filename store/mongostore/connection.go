package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/kartdaily-api/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"
)

type DB struct {
	db       *mongo.Database
	users    *userRepository
	products *productRepository
	orders   *orderRepository
}

func Connect(ctx context.Context, uri, database string) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return New(client.Database(database)), nil
}

func New(db *mongo.Database) *DB {
	return &DB{
		db:       db,
		users:    &userRepository{collection: db.Collection(usersCollection)},
		products: &productRepository{collection: db.Collection(productsCollection)},
		orders:   &orderRepository{collection: db.Collection(ordersCollection)},
	}
}

func (d *DB) Users() store.UserStore       { return d.users }
func (d *DB) Products() store.ProductStore { return d.products }
func (d *DB) Orders() store.OrderStore     { return d.orders }

// Migrate creates the indexes the repositories rely on.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.users.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = d.orders.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	_, err = d.products.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "rating", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.db.Client().Disconnect(ctx)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}
