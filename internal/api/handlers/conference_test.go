package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/database"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/stretchr/testify/require"
)

func newConferenceRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	db := newTestDB(t)
	createTestAccount(t, db, "u1")

	h := NewConferenceHandler(db.DB)
	router := gin.New()
	router.Use(asUser("u1"))
	router.GET("/v1/conference", h.GetConference)
	return router, db
}

func TestGetConferenceBeforeFirstSync(t *testing.T) {
	router, _ := newConferenceRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/conference", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Nil(t, body["schedule"])
	require.Len(t, body["favorites"], 0)
	require.Len(t, body["votes"], 0)
}

func TestGetConferenceIncludesUserState(t *testing.T) {
	router, db := newConferenceRouter(t)
	ctx := context.Background()
	queries := models.New(db.DB)

	require.NoError(t, queries.UpsertConferenceDocument(ctx, models.UpsertConferenceDocumentParams{
		Digest: "abc",
		Body:   `{"sessions": []}`,
	}))
	start := time.Now().Add(-time.Hour)
	createTestSession(t, db, "s1", &start)
	require.NoError(t, queries.AddFavorite(ctx, models.FavoriteParams{AccountID: "u1", SessionID: "s1"}))
	require.NoError(t, queries.CreateVote(ctx, models.PutVoteParams{AccountID: "u1", SessionID: "s1", Rating: 3}))

	w := doJSON(t, router, http.MethodGet, "/v1/conference", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, map[string]any{"sessions": []any{}}, body["schedule"])
	require.Equal(t, []any{"s1"}, body["favorites"])

	votes := body["votes"].([]any)
	require.Len(t, votes, 1)
	require.Equal(t, "s1", votes[0].(map[string]any)["sessionId"])
}

func TestSessionsEndpoints(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 5, 21, 9, 0, 0, 0, time.UTC)
	createTestSession(t, db, "s1", &start)
	createTestSession(t, db, "s2", nil)

	h := NewSessionHandler(db.DB)
	router := gin.New()
	router.GET("/v1/sessions", h.ListSessions)
	router.GET("/v1/sessions/:id", h.GetSession)

	w := doJSON(t, router, http.MethodGet, "/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decodeBody(t, w)["sessions"].([]any)
	require.Len(t, sessions, 2)
	// Scheduled sessions sort before unscheduled ones.
	require.Equal(t, "s1", sessions[0].(map[string]any)["id"])

	w = doJSON(t, router, http.MethodGet, "/v1/sessions/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Session s1", body["title"])
	require.EqualValues(t, start.UnixMilli(), body["startsAt"])

	w = doJSON(t, router, http.MethodGet, "/v1/sessions/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
