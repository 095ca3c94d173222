package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/clock"
	"github.com/isfaaghyth/kotlinconf-app/pkg/logger"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

// Broadcaster pushes live events to connected clients.
type Broadcaster interface {
	Broadcast(event types.LiveEvent)
}

type TimeHandler struct {
	clock *clock.VirtualClock
	live  Broadcaster
}

func NewTimeHandler(vc *clock.VirtualClock, live Broadcaster) *TimeHandler {
	return &TimeHandler{
		clock: vc,
		live:  live,
	}
}

// GetTime handles GET /v1/time. Public: clients render the schedule against
// the server's logical time so demo rehearsals shift every device at once.
func (h *TimeHandler) GetTime(c *gin.Context) {
	_, simulated := h.clock.Override()
	c.JSON(http.StatusOK, types.TimeResponse{
		Time:      h.clock.Now().UnixMilli(),
		Simulated: simulated,
	})
}

// SetTime handles POST /v1/time (admin). A numeric body installs a
// simulated time override; null clears it and returns the server to real
// time. The response carries the resulting logical time.
func (h *TimeHandler) SetTime(c *gin.Context) {
	var req types.SetTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	if req.Time == nil {
		h.clock.SetOverride(nil)
		logger.Infof("Time override cleared")
	} else {
		override := time.UnixMilli(*req.Time)
		h.clock.SetOverride(&override)
		logger.Infof("Time override set to %s", override.UTC().Format(time.RFC3339))
	}

	now := h.clock.Now().UnixMilli()
	_, simulated := h.clock.Override()

	if h.live != nil {
		h.live.Broadcast(types.LiveEvent{
			Type: types.LiveEventTimeOverride,
			Data: map[string]any{"time": now, "simulated": simulated},
		})
	}

	c.JSON(http.StatusOK, types.TimeResponse{Time: now, Simulated: simulated})
}
