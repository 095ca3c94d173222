package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/middleware"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/internal/schedule"
	"github.com/isfaaghyth/kotlinconf-app/internal/vote"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

// StatusComeBackLater tells the client that voting for the session has not
// opened yet. It is deliberately not a standard status: it must be
// distinguishable from success and from 401/403 so the app can show
// "voting opens at session start" instead of a generic error.
const StatusComeBackLater = 477

// Rating bounds: 1 = bad, 2 = ok, 3 = good.
const (
	minRating = 1
	maxRating = 3
)

// StartResolver resolves a session's scheduled start for the vote gate.
type StartResolver interface {
	StartTime(ctx context.Context, sessionID string) (time.Time, bool, error)
}

type VotesHandler struct {
	db      *sql.DB
	queries *models.Queries
	starts  StartResolver
	gate    *vote.Gate
}

func NewVotesHandler(db *sql.DB, starts StartResolver, gate *vote.Gate) *VotesHandler {
	return &VotesHandler{
		db:      db,
		queries: models.New(db),
		starts:  starts,
		gate:    gate,
	}
}

// ListVotes handles GET /v1/votes
func (h *VotesHandler) ListVotes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	votes, err := h.queries.ListVotes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to list votes"})
		return
	}

	items := make([]types.VoteItem, 0, len(votes))
	for _, v := range votes {
		items = append(items, types.VoteItem{
			SessionID: v.SessionID,
			Rating:    int(v.Rating),
		})
	}

	c.JSON(http.StatusOK, gin.H{"votes": items})
}

// PostVote handles POST /v1/votes. Voting opens at the session's scheduled
// start measured against the logical clock, so a demo time override shifts
// the gate too. A first vote answers 201, a revision 200, and a submission
// before the start answers 477 without persisting anything.
func (h *VotesHandler) PostVote(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Rating < minRating || req.Rating > maxRating {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "rating must be between 1 and 3"})
		return
	}

	startsAt, hasStart, err := h.starts.StartTime(c.Request.Context(), req.SessionID)
	if err == schedule.ErrSessionNotFound {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to resolve session"})
		return
	}

	if h.gate.Check(startsAt, hasStart) == vote.VerdictTooEarly {
		c.JSON(StatusComeBackLater, gin.H{"error": "voting is not open yet"})
		return
	}

	// Upsert in a transaction so the insert/update distinction stays
	// accurate under concurrent submissions from the same account.
	tx, err := h.db.BeginTx(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store vote"})
		return
	}
	defer tx.Rollback()

	txQueries := h.queries.WithTx(tx)
	created := false

	_, err = txQueries.GetVote(c.Request.Context(), models.VoteKeyParams{
		AccountID: userID,
		SessionID: req.SessionID,
	})
	switch {
	case err == sql.ErrNoRows:
		created = true
		err = txQueries.CreateVote(c.Request.Context(), models.PutVoteParams{
			AccountID: userID,
			SessionID: req.SessionID,
			Rating:    int64(req.Rating),
		})
	case err == nil:
		err = txQueries.UpdateVote(c.Request.Context(), models.PutVoteParams{
			AccountID: userID,
			SessionID: req.SessionID,
			Rating:    int64(req.Rating),
		})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store vote"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store vote"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, types.SuccessResponse{Success: true})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// DeleteVote handles DELETE /v1/votes/:sessionId
func (h *VotesHandler) DeleteVote(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.queries.DeleteVote(c.Request.Context(), models.VoteKeyParams{
		AccountID: userID,
		SessionID: c.Param("sessionId"),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to delete vote"})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// GetVoteSummary handles GET /v1/votes/summary/:sessionId (admin). Missing
// ratings report zero so dashboards always see all three buckets.
func (h *VotesHandler) GetVoteSummary(c *gin.Context) {
	sessionID := c.Param("sessionId")

	counts, err := h.queries.CountVotesBySession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to summarize votes"})
		return
	}

	summary := map[int64]int64{minRating: 0, 2: 0, maxRating: 0}
	var total int64
	for _, count := range counts {
		summary[count.Rating] = count.Count
		total += count.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"bad":       summary[1],
		"ok":        summary[2],
		"good":      summary[3],
		"total":     total,
	})
}
