package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/database"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/internal/schedule"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestAccount(t *testing.T, db *database.DB, id string) {
	t.Helper()
	err := models.New(db.DB).CreateAccount(context.Background(), models.CreateAccountParams{
		ID:       id,
		DeviceID: "device-" + id,
	})
	require.NoError(t, err)
}

func createTestSession(t *testing.T, db *database.DB, id string, startsAt *time.Time) {
	t.Helper()
	arg := models.UpsertSessionParams{
		ID:       id,
		Title:    "Session " + id,
		Speakers: `["Test Speaker"]`,
	}
	if startsAt != nil {
		arg.StartsAt.Time = *startsAt
		arg.StartsAt.Valid = true
	}
	err := models.New(db.DB).UpsertSession(context.Background(), arg)
	require.NoError(t, err)
}

// asUser injects the authenticated user id the way AuthMiddleware does.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fakeStarts resolves session starts from a fixture map.
type fakeStarts struct {
	starts map[string]*time.Time
}

func (f *fakeStarts) StartTime(_ context.Context, sessionID string) (time.Time, bool, error) {
	start, ok := f.starts[sessionID]
	if !ok {
		return time.Time{}, false, schedule.ErrSessionNotFound
	}
	if start == nil {
		return time.Time{}, false, nil
	}
	return *start, true, nil
}

// captureBroadcaster records broadcast events for assertions.
type captureBroadcaster struct {
	events []types.LiveEvent
}

func (b *captureBroadcaster) Broadcast(event types.LiveEvent) {
	b.events = append(b.events, event)
}
