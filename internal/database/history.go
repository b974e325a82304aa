package database

import (
	"context"

	"videotube/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type watchHistoryDoc struct {
	WatchHistory  []primitive.ObjectID       `bson:"watchHistory"`
	WatchedVideos []models.WatchHistoryEntry `bson:"watchedVideos"`
}

// GetWatchHistory returns the user's watched videos, each with its owner's
// public fields, in the order the history stores them. $lookup does not keep
// localField order, so the joined videos are reordered here. Videos that no
// longer exist are skipped; repeated ids repeat.
func (s *Store) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]models.WatchHistoryEntry, error) {
	cursor, err := s.users.Aggregate(ctx, watchHistoryPipeline(userID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []watchHistoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound
	}

	doc := docs[0]
	byID := make(map[primitive.ObjectID]models.WatchHistoryEntry, len(doc.WatchedVideos))
	for _, v := range doc.WatchedVideos {
		byID[v.ID] = v
	}

	history := make([]models.WatchHistoryEntry, 0, len(doc.WatchHistory))
	for _, id := range doc.WatchHistory {
		if v, ok := byID[id]; ok {
			history = append(history, v)
		}
	}
	return history, nil
}

func watchHistoryPipeline(userID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"_id": userID}},
		{"$lookup": bson.M{
			"from":         videosCollection,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "watchedVideos",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         usersCollection,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline": []bson.M{
						{"$project": bson.M{"_id": 0, "fullname": 1, "username": 1, "avatar": 1}},
					},
				}},
				{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
			},
		}},
		{"$project": bson.M{"watchHistory": 1, "watchedVideos": 1}},
	}
}
