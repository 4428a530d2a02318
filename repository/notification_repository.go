package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/common/logger"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
)

// NotificationRepository is an append-only per-user notification store. The
// only mutation besides creation is flipping the read flag.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Watch(ctx context.Context, userID string) (<-chan models.Notification, error)
}

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection: db.Collection("notifications"),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag on one notification. Matching is scoped to
// the owner so a user can never mark someone else's notification.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (int64, error) {
	filter := bson.M{"_id": notificationID, "user_id": userID}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"user_id": userID, "read": false}
	res, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Watch subscribes to newly inserted notifications for one user via a
// change stream. The returned channel closes when ctx is cancelled or the
// stream ends. The write path is unaware of subscribers.
func (r *notificationRepository) Watch(ctx context.Context, userID string) (<-chan models.Notification, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: "insert"},
			{Key: "fullDocument.user_id", Value: userID},
		}}},
	}

	stream, err := r.collection.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(chan models.Notification)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.Notification `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				logger.Log.Warn("failed to decode notification change event",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				continue
			}

			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
