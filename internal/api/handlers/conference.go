package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/middleware"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type ConferenceHandler struct {
	queries *models.Queries
}

func NewConferenceHandler(db *sql.DB) *ConferenceHandler {
	return &ConferenceHandler{
		queries: models.New(db),
	}
}

// GetConference handles GET /v1/conference. It returns the raw schedule
// document together with the caller's favorites and votes, so the app can
// render everything from a single round trip.
func (h *ConferenceHandler) GetConference(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	ctx := c.Request.Context()

	var schedule json.RawMessage
	doc, err := h.queries.GetConferenceDocument(ctx)
	switch {
	case err == sql.ErrNoRows:
		// Not synchronized yet; clients treat a null schedule as "loading".
		schedule = json.RawMessage("null")
	case err != nil:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get conference data"})
		return
	default:
		schedule = json.RawMessage(doc.Body)
	}

	favorites, err := h.queries.ListFavoriteSessionIDs(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get favorites"})
		return
	}

	votes, err := h.queries.ListVotes(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get votes"})
		return
	}

	voteItems := make([]types.VoteItem, 0, len(votes))
	for _, v := range votes {
		voteItems = append(voteItems, types.VoteItem{
			SessionID: v.SessionID,
			Rating:    int(v.Rating),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule":  schedule,
		"favorites": favorites,
		"votes":     voteItems,
	})
}
