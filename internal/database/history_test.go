package database

import (
	"context"
	"testing"
	"time"

	"videotube/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createVideo(t *testing.T, owner primitive.ObjectID, title string) primitive.ObjectID {
	ts := time.Now().UTC()
	res, err := testStore.videos.InsertOne(context.Background(), models.Video{
		VideoFile:   "https://example.com/" + title + ".mp4",
		Thumbnail:   "https://example.com/" + title + ".png",
		Title:       title,
		Description: "about " + title,
		Duration:    12.5,
		IsPublished: true,
		Owner:       owner,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	require.NoError(t, err)
	return res.InsertedID.(primitive.ObjectID)
}

func setHistory(t *testing.T, userID primitive.ObjectID, ids ...primitive.ObjectID) {
	_, err := testStore.users.UpdateByID(context.Background(), userID, bson.M{
		"$set": bson.M{"watchHistory": ids},
	})
	require.NoError(t, err)
}

func TestGetWatchHistory(t *testing.T) {
	ctx := context.Background()
	_, viewer := createRandomUser(t)
	owner, ownerID := createRandomUser(t)

	first := createVideo(t, ownerID, "first")
	second := createVideo(t, ownerID, "second")
	third := createVideo(t, ownerID, "third")

	// Stored order deliberately differs from insertion order.
	setHistory(t, viewer, third, first, second)

	history, err := testStore.GetWatchHistory(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, third, history[0].ID)
	require.Equal(t, first, history[1].ID)
	require.Equal(t, second, history[2].ID)

	for _, entry := range history {
		require.NotNil(t, entry.Owner)
		require.Equal(t, owner.Username, entry.Owner.Username)
		require.Equal(t, owner.FullName, entry.Owner.FullName)
		require.Equal(t, owner.Avatar, entry.Owner.Avatar)
	}
	require.Equal(t, "third", history[0].Title)
}

func TestGetWatchHistory_OwnerProjection(t *testing.T) {
	ctx := context.Background()
	_, viewer := createRandomUser(t)
	_, ownerID := createRandomUser(t)
	video := createVideo(t, ownerID, "projection")
	setHistory(t, viewer, video)
	require.NoError(t, testStore.SetRefreshToken(ctx, ownerID, "owner-token"))

	cursor, err := testStore.users.Aggregate(ctx, watchHistoryPipeline(viewer))
	require.NoError(t, err)

	var docs []bson.M
	require.NoError(t, cursor.All(ctx, &docs))
	require.Len(t, docs, 1)

	watched, ok := docs[0]["watchedVideos"].(bson.A)
	require.True(t, ok)
	require.Len(t, watched, 1)

	owner, ok := watched[0].(bson.M)["owner"].(bson.M)
	require.True(t, ok)
	require.Len(t, owner, 3)
	require.Contains(t, owner, "fullname")
	require.Contains(t, owner, "username")
	require.Contains(t, owner, "avatar")
	require.NotContains(t, owner, "password")
	require.NotContains(t, owner, "refreshToken")
}

func TestGetWatchHistory_DuplicatesAndMissing(t *testing.T) {
	ctx := context.Background()
	_, viewer := createRandomUser(t)
	_, ownerID := createRandomUser(t)

	video := createVideo(t, ownerID, "repeat")
	setHistory(t, viewer, video, primitive.NewObjectID(), video)

	history, err := testStore.GetWatchHistory(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, video, history[0].ID)
	require.Equal(t, video, history[1].ID)
}

func TestGetWatchHistory_Empty(t *testing.T) {
	_, viewer := createRandomUser(t)

	history, err := testStore.GetWatchHistory(context.Background(), viewer)
	require.NoError(t, err)
	require.NotNil(t, history)
	require.Empty(t, history)
}

func TestGetWatchHistory_UnknownUser(t *testing.T) {
	_, err := testStore.GetWatchHistory(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrUserNotFound)
}
