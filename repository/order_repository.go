package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
)

// OrderRepository is the durable order store. Orders are append-only except
// for the single status/comment update performed by DecideIfPending.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByIDAndUserID(ctx context.Context, id, userID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	DecideIfPending(ctx context.Context, id, status, adminComment string) (*models.Order, error)
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{
		collection: db.Collection("orders"),
	}
}

// Create inserts the order and stamps CreatedAt server-side; the submission
// timestamp is never taken from the client.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DecideIfPending atomically moves a Pending Approval order to a terminal
// status. The status filter is the compare-and-swap that guarantees at most
// one of two concurrent deciders wins; the loser gets mongo.ErrNoDocuments.
func (r *orderRepository) DecideIfPending(ctx context.Context, id, status, adminComment string) (*models.Order, error) {
	filter := bson.M{"_id": id, "status": models.StatusPendingApproval}
	update := bson.M{"$set": bson.M{
		"status":        status,
		"admin_comment": adminComment,
		"decided_at":    time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
