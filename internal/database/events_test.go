package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLogAndGetEvents(t *testing.T) {
	ctx := context.Background()
	_, userID := createRandomUser(t)
	_, otherID := createRandomUser(t)

	first, err := testStore.LogEvent(ctx, userID, "account.updated", map[string]any{"fullname": "A"})
	require.NoError(t, err)
	require.False(t, first.ID.IsZero())

	_, err = testStore.LogEvent(ctx, otherID, "account.updated", nil)
	require.NoError(t, err)

	second, err := testStore.LogEvent(ctx, userID, "password.changed", nil)
	require.NoError(t, err)

	all, err := testStore.GetEventsSince(ctx, userID, primitive.NilObjectID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
	require.Equal(t, "A", all[0].Payload["fullname"])
	require.Equal(t, second.ID, all[1].ID)
	require.Nil(t, all[1].Payload)

	newer, err := testStore.GetEventsSince(ctx, userID, first.ID)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	require.Equal(t, "password.changed", newer[0].EventType)

	none, err := testStore.GetEventsSince(ctx, userID, second.ID)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}
