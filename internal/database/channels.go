package database

import (
	"context"

	"videotube/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetChannelProfile joins a user with the subscription edges pointing at and
// away from it. viewerID decides isSubscribed; pass primitive.NilObjectID for
// an anonymous viewer. Returns nil when no user has that username.
func (s *Store) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*models.ChannelProfile, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"username": normalizeUsername(username)}},
		{"$lookup": bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}},
		{"$lookup": bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribedTo",
		}},
		{"$addFields": bson.M{
			"subscribersCount":          bson.M{"$size": "$subscribers"},
			"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed": bson.M{"$cond": bson.M{
				"if":   bson.M{"$in": bson.A{viewerID, "$subscribers.subscriber"}},
				"then": true,
				"else": false,
			}},
		}},
		{"$project": bson.M{
			"fullname":                  1,
			"username":                  1,
			"subscribersCount":          1,
			"channelsSubscribedToCount": 1,
			"isSubscribed":              1,
			"avatar":                    1,
			"coverImage":                1,
			"email":                     1,
		}},
	}

	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var channels []models.ChannelProfile
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, nil
	}
	return &channels[0], nil
}
