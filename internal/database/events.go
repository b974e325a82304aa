package database

import (
	"context"

	"videotube/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventsPageSize = 100

func (s *Store) LogEvent(ctx context.Context, userID primitive.ObjectID, eventType string, payload map[string]any) (*models.AccountEvent, error) {
	event := &models.AccountEvent{
		UserID:    userID,
		EventType: eventType,
		EventTime: now(),
		Payload:   payload,
	}

	res, err := s.events.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}

	event.ID = res.InsertedID.(primitive.ObjectID)
	return event, nil
}

// GetEventsSince returns up to one page of the user's events with an id
// greater than sinceID, oldest first. A zero sinceID starts from the
// beginning.
func (s *Store) GetEventsSince(ctx context.Context, userID, sinceID primitive.ObjectID) ([]models.AccountEvent, error) {
	filter := bson.M{"userId": userID}
	if !sinceID.IsZero() {
		filter["_id"] = bson.M{"$gt": sinceID}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(eventsPageSize)

	cursor, err := s.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.AccountEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
