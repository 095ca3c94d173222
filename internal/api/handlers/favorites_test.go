package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
	"github.com/stretchr/testify/require"
)

func newFavoritesRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()
	db := newTestDB(t)
	createTestAccount(t, db, userID)
	createTestSession(t, db, "s1", nil)

	h := NewFavoritesHandler(db.DB)
	router := gin.New()
	router.Use(asUser(userID))
	router.GET("/v1/favorites", h.ListFavorites)
	router.POST("/v1/favorites", h.AddFavorite)
	router.DELETE("/v1/favorites/:sessionId", h.DeleteFavorite)
	return router
}

func TestFavoritesLifecycle(t *testing.T) {
	router := newFavoritesRouter(t, "u1")

	w := doJSON(t, router, http.MethodGet, "/v1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["favorites"], 0)

	w = doJSON(t, router, http.MethodPost, "/v1/favorites", types.FavoriteRequest{SessionID: "s1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Favoriting twice is a no-op.
	w = doJSON(t, router, http.MethodPost, "/v1/favorites", types.FavoriteRequest{SessionID: "s1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/favorites", nil)
	favorites := decodeBody(t, w)["favorites"].([]any)
	require.Equal(t, []any{"s1"}, favorites)

	w = doJSON(t, router, http.MethodDelete, "/v1/favorites/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/favorites", nil)
	require.Len(t, decodeBody(t, w)["favorites"], 0)
}

func TestAddFavoriteUnknownSession(t *testing.T) {
	router := newFavoritesRouter(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/v1/favorites", types.FavoriteRequest{SessionID: "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
