package models_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/isfaaghyth/kotlinconf-app/internal/database"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/stretchr/testify/require"
)

func newQueries(t *testing.T) *models.Queries {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return models.New(db.DB)
}

func TestAccountsByDeviceID(t *testing.T) {
	q := newQueries(t)
	ctx := context.Background()

	require.NoError(t, q.CreateAccount(ctx, models.CreateAccountParams{ID: "u1", DeviceID: "d1"}))

	account, err := q.GetAccountByDeviceID(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, "u1", account.ID)

	_, err = q.GetAccountByDeviceID(ctx, "unknown")
	require.ErrorIs(t, err, sql.ErrNoRows)

	// Device ids are unique.
	require.Error(t, q.CreateAccount(ctx, models.CreateAccountParams{ID: "u2", DeviceID: "d1"}))
}

func TestUpsertSessionReplacesFields(t *testing.T) {
	q := newQueries(t)
	ctx := context.Background()

	start := time.Date(2026, 5, 21, 9, 0, 0, 0, time.UTC)
	require.NoError(t, q.UpsertSession(ctx, models.UpsertSessionParams{
		ID:       "s1",
		Title:    "Keynote",
		Speakers: `[]`,
		StartsAt: sql.NullTime{Time: start, Valid: true},
	}))

	// Re-sync moves the slot and clears the room.
	moved := start.Add(time.Hour)
	require.NoError(t, q.UpsertSession(ctx, models.UpsertSessionParams{
		ID:       "s1",
		Title:    "Keynote",
		Speakers: `[]`,
		StartsAt: sql.NullTime{Time: moved, Valid: true},
	}))

	session, err := q.GetSessionByID(ctx, "s1")
	require.NoError(t, err)
	require.True(t, session.StartsAt.Valid)
	require.Equal(t, moved, session.StartsAt.Time.UTC())
}

func TestDeleteSessionsExcept(t *testing.T) {
	q := newQueries(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, q.UpsertSession(ctx, models.UpsertSessionParams{ID: id, Title: id, Speakers: `[]`}))
	}

	require.NoError(t, q.DeleteSessionsExcept(ctx, []string{"s2"}))
	sessions, err := q.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "s2", sessions[0].ID)

	require.NoError(t, q.DeleteSessionsExcept(ctx, nil))
	sessions, err = q.ListSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestFeedItemsCursorBounds(t *testing.T) {
	q := newQueries(t)
	ctx := context.Background()

	var counters []int64
	for _, id := range []string{"f1", "f2", "f3", "f4"} {
		item, err := q.CreateFeedItem(ctx, models.CreateFeedItemParams{ID: id, Body: `{}`})
		require.NoError(t, err)
		counters = append(counters, item.Counter)
	}

	items, err := q.ListFeedItems(ctx, models.ListFeedItemsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, "f4", items[0].ID)

	items, err = q.ListFeedItems(ctx, models.ListFeedItemsParams{Before: counters[2], Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "f2", items[0].ID)

	items, err = q.ListFeedItems(ctx, models.ListFeedItemsParams{After: counters[2], Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "f4", items[0].ID)
}

func TestCreateAndListVotes(t *testing.T) {
	q := newQueries(t)
	ctx := context.Background()

	require.NoError(t, q.CreateAccount(ctx, models.CreateAccountParams{ID: "u1", DeviceID: "d1"}))
	require.NoError(t, q.CreateVote(ctx, models.PutVoteParams{AccountID: "u1", SessionID: "s1", Rating: 3}))

	votes, err := q.ListVotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, votes, 1)
}
