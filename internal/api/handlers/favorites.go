package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/middleware"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type FavoritesHandler struct {
	queries *models.Queries
}

func NewFavoritesHandler(db *sql.DB) *FavoritesHandler {
	return &FavoritesHandler{
		queries: models.New(db),
	}
}

// ListFavorites handles GET /v1/favorites
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	ids, err := h.queries.ListFavoriteSessionIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}

// AddFavorite handles POST /v1/favorites. Favoriting an unknown session is
// rejected; favoriting twice is a no-op.
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req types.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.queries.GetSessionByID(c.Request.Context(), req.SessionID); err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "session not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to add favorite"})
		return
	}

	if err := h.queries.AddFavorite(c.Request.Context(), models.FavoriteParams{
		AccountID: userID,
		SessionID: req.SessionID,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, types.SuccessResponse{Success: true})
}

// DeleteFavorite handles DELETE /v1/favorites/:sessionId
func (h *FavoritesHandler) DeleteFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.queries.DeleteFavorite(c.Request.Context(), models.FavoriteParams{
		AccountID: userID,
		SessionID: c.Param("sessionId"),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to delete favorite"})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}
