package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type FeedHandler struct {
	queries *models.Queries
	live    Broadcaster
}

func NewFeedHandler(db *sql.DB, live Broadcaster) *FeedHandler {
	return &FeedHandler{
		queries: models.New(db),
		live:    live,
	}
}

type FeedItemResponse struct {
	ID        string      `json:"id"`
	Body      interface{} `json:"body"`
	Cursor    string      `json:"cursor"`
	CreatedAt int64       `json:"createdAt"`
}

// ListFeed handles GET /v1/feed
func (h *FeedHandler) ListFeed(c *gin.Context) {
	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	// Fetch one extra row so hasMore reflects actual remaining items even
	// when the page lands exactly on the limit.
	params := models.ListFeedItemsParams{Limit: limit + 1}
	if counter, ok := parseFeedCursor(c.Query("before")); ok {
		params.Before = counter
	}
	if counter, ok := parseFeedCursor(c.Query("after")); ok {
		params.After = counter
	}

	items, err := h.queries.ListFeedItems(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get feed"})
		return
	}

	hasMore := int64(len(items)) > limit
	if hasMore {
		items = items[:limit]
	}

	response := make([]FeedItemResponse, 0, len(items))
	for _, item := range items {
		var body interface{}
		if err := json.Unmarshal([]byte(item.Body), &body); err != nil {
			body = nil
		}
		response = append(response, FeedItemResponse{
			ID:        item.ID,
			Body:      body,
			Cursor:    feedCursor(item.Counter),
			CreatedAt: item.CreatedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   response,
		"hasMore": hasMore,
	})
}

type PostFeedRequest struct {
	Body map[string]any `json:"body" binding:"required"`
}

// PostFeed handles POST /v1/feed (admin): publishes an announcement and
// notifies connected clients.
func (h *FeedHandler) PostFeed(c *gin.Context) {
	var req PostFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	encoded, err := json.Marshal(req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid body"})
		return
	}

	item, err := h.queries.CreateFeedItem(c.Request.Context(), models.CreateFeedItemParams{
		ID:   types.NewCUID(),
		Body: string(encoded),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to publish announcement"})
		return
	}

	if h.live != nil {
		h.live.Broadcast(types.LiveEvent{
			Type: types.LiveEventAnnouncement,
			Data: map[string]any{
				"id":        item.ID,
				"body":      req.Body,
				"cursor":    feedCursor(item.Counter),
				"createdAt": item.CreatedAt.UnixMilli(),
			},
		})
	}

	c.JSON(http.StatusCreated, FeedItemResponse{
		ID:        item.ID,
		Body:      req.Body,
		Cursor:    feedCursor(item.Counter),
		CreatedAt: item.CreatedAt.UnixMilli(),
	})
}

func parseFeedCursor(cursor string) (int64, bool) {
	if cursor == "" {
		return 0, false
	}
	parts := strings.Split(cursor, "-")
	if len(parts) != 2 {
		return 0, false
	}
	counter, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return counter, true
}

func feedCursor(counter int64) string {
	return "0-" + strconv.FormatInt(counter, 10)
}
