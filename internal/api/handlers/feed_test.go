package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
	"github.com/stretchr/testify/require"
)

func newFeedRouter(t *testing.T, live Broadcaster) *gin.Engine {
	t.Helper()
	db := newTestDB(t)
	h := NewFeedHandler(db.DB, live)
	router := gin.New()
	router.GET("/v1/feed", h.ListFeed)
	router.POST("/v1/feed", h.PostFeed)
	return router
}

func publish(t *testing.T, router *gin.Engine, text string) map[string]any {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/feed", PostFeedRequest{
		Body: map[string]any{"text": text},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)
}

func TestFeedNewestFirst(t *testing.T) {
	router := newFeedRouter(t, nil)

	for i := 0; i < 3; i++ {
		publish(t, router, fmt.Sprintf("announcement %d", i))
	}

	w := doJSON(t, router, http.MethodGet, "/v1/feed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := decodeBody(t, w)["items"].([]any)
	require.Len(t, items, 3)
	first := items[0].(map[string]any)
	require.Equal(t, "announcement 2", first["body"].(map[string]any)["text"])
}

func TestFeedCursorPagination(t *testing.T) {
	router := newFeedRouter(t, nil)

	for i := 0; i < 5; i++ {
		publish(t, router, fmt.Sprintf("announcement %d", i))
	}

	w := doJSON(t, router, http.MethodGet, "/v1/feed?limit=2", nil)
	body := decodeBody(t, w)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	require.True(t, body["hasMore"].(bool))

	cursor := items[1].(map[string]any)["cursor"].(string)
	w = doJSON(t, router, http.MethodGet, "/v1/feed?limit=10&before="+cursor, nil)
	rest := decodeBody(t, w)["items"].([]any)
	require.Len(t, rest, 3)
	require.Equal(t, "announcement 2", rest[0].(map[string]any)["body"].(map[string]any)["text"])
}

func TestFeedHasMoreExactLimit(t *testing.T) {
	router := newFeedRouter(t, nil)

	for i := 0; i < 4; i++ {
		publish(t, router, fmt.Sprintf("announcement %d", i))
	}

	// The page holds everything; landing exactly on the limit is not
	// another page.
	w := doJSON(t, router, http.MethodGet, "/v1/feed?limit=4", nil)
	body := decodeBody(t, w)
	require.Len(t, body["items"].([]any), 4)
	require.False(t, body["hasMore"].(bool))

	w = doJSON(t, router, http.MethodGet, "/v1/feed?limit=2", nil)
	body = decodeBody(t, w)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	require.True(t, body["hasMore"].(bool))

	// The final page fills its limit exactly and still ends the feed.
	cursor := items[1].(map[string]any)["cursor"].(string)
	w = doJSON(t, router, http.MethodGet, "/v1/feed?limit=2&before="+cursor, nil)
	body = decodeBody(t, w)
	require.Len(t, body["items"].([]any), 2)
	require.False(t, body["hasMore"].(bool))
}

func TestPostFeedBroadcastsAnnouncement(t *testing.T) {
	live := &captureBroadcaster{}
	router := newFeedRouter(t, live)

	publish(t, router, "doors open")

	require.Len(t, live.events, 1)
	require.Equal(t, types.LiveEventAnnouncement, live.events[0].Type)
	body := live.events[0].Data["body"].(map[string]any)
	require.Equal(t, "doors open", body["text"])
}

func TestPostFeedRequiresBody(t *testing.T) {
	router := newFeedRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/v1/feed", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
