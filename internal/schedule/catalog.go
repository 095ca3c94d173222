// Package schedule synchronizes conference sessions from the external
// schedule source and answers session lookups for the vote path.
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
)

// startCacheSize bounds the start-time cache; conferences have a few
// hundred sessions at most.
const startCacheSize = 1024

// startEntry caches one session's scheduled start. known is false when the
// schedule has no start assigned, so negative answers are cached too.
type startEntry struct {
	startsAt time.Time
	known    bool
}

// Catalog answers session start-time lookups, caching results in-process.
// The vote path hits this on every submission.
type Catalog struct {
	queries *models.Queries
	starts  *lru.Cache[string, startEntry]
}

// NewCatalog returns a catalog reading through to the given queries.
func NewCatalog(queries *models.Queries) (*Catalog, error) {
	cache, err := lru.New[string, startEntry](startCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create start cache: %w", err)
	}
	return &Catalog{queries: queries, starts: cache}, nil
}

// ErrSessionNotFound is returned for session ids absent from the schedule.
var ErrSessionNotFound = fmt.Errorf("session not found")

// StartTime returns the scheduled start for a session. The second result is
// false when the session exists but has no start assigned yet.
func (c *Catalog) StartTime(ctx context.Context, sessionID string) (time.Time, bool, error) {
	if entry, ok := c.starts.Get(sessionID); ok {
		return entry.startsAt, entry.known, nil
	}

	session, err := c.queries.GetSessionByID(ctx, sessionID)
	if err == sql.ErrNoRows {
		return time.Time{}, false, ErrSessionNotFound
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	entry := startEntry{}
	if session.StartsAt.Valid {
		entry = startEntry{startsAt: session.StartsAt.Time, known: true}
	}
	c.starts.Add(sessionID, entry)
	return entry.startsAt, entry.known, nil
}

// Invalidate drops all cached entries. Called after every schedule sync.
func (c *Catalog) Invalidate() {
	c.starts.Purge()
}
