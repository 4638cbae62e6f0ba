package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepository struct {
	collection *mongo.Collection
}

// ownerStages joins the owning user into "owner", keeping only the listed fields.
func ownerStages(fields ...string) mongo.Pipeline {
	project := bson.M{"_id": 1}
	for _, field := range fields {
		project[field] = 1
	}
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": usersCollection,
			"let":  bson.M{"userId": "$user"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$userId"}}}},
				bson.M{"$project": project},
			},
			"as": "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
	}
}

func (r *orderRepository) aggregate(ctx context.Context, match bson.M, fields ...string) ([]models.Order, error) {
	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: match}}}, ownerStages(fields...)...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now()
	if order.ID == "" {
		order.ID = newID()
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	doc := *order
	doc.Owner = nil
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	orders, err := r.aggregate(ctx, bson.M{"_id": id}, "name", "email")
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, store.ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.aggregate(ctx, bson.M{}, "name")
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()

	doc := *order
	doc.Owner = nil
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}
	return result.DeletedCount, nil
}
