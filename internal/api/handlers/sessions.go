package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type SessionHandler struct {
	queries *models.Queries
}

func NewSessionHandler(db *sql.DB) *SessionHandler {
	return &SessionHandler{
		queries: models.New(db),
	}
}

// SessionResponse is one normalized conference session.
type SessionResponse struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Room     *string  `json:"room"`
	Speakers []string `json:"speakers"`
	// StartsAt/EndsAt are epoch milliseconds; null when unscheduled.
	StartsAt *int64 `json:"startsAt"`
	EndsAt   *int64 `json:"endsAt"`
}

func toSessionResponse(s models.Session) SessionResponse {
	resp := SessionResponse{
		ID:    s.ID,
		Title: s.Title,
	}
	if s.Room.Valid {
		resp.Room = &s.Room.String
	}
	if err := json.Unmarshal([]byte(s.Speakers), &resp.Speakers); err != nil {
		resp.Speakers = []string{}
	}
	if s.StartsAt.Valid {
		ms := s.StartsAt.Time.UnixMilli()
		resp.StartsAt = &ms
	}
	if s.EndsAt.Valid {
		ms := s.EndsAt.Time.UnixMilli()
		resp.EndsAt = &ms
	}
	return resp
}

// ListSessions handles GET /v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.queries.ListSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to list sessions"})
		return
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, toSessionResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"sessions": response})
}

// GetSession handles GET /v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.queries.GetSessionByID(c.Request.Context(), c.Param("id"))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get session"})
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(session))
}
