package schedule

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/logger"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

// maxDocumentBytes caps the schedule payload read from the source.
const maxDocumentBytes = 16 << 20

// Broadcaster pushes live events to connected clients.
type Broadcaster interface {
	Broadcast(event types.LiveEvent)
}

// Syncer polls the external schedule source, normalizes sessions into
// storage, and notifies clients when the document changes.
type Syncer struct {
	url      string
	interval time.Duration
	loc      *time.Location
	client   *http.Client
	db       *sql.DB
	queries  *models.Queries
	catalog  *Catalog
	live     Broadcaster

	// lastDigest is the digest of the last stored document; compared to
	// skip no-op syncs. Only touched from the Run goroutine.
	lastDigest string
}

// NewSyncer creates a syncer polling url every interval. Zone-less
// schedule timestamps are interpreted in loc (nil means UTC). live may
// be nil.
func NewSyncer(url string, interval time.Duration, loc *time.Location, db *sql.DB, catalog *Catalog, live Broadcaster) *Syncer {
	return &Syncer{
		url:      url,
		interval: interval,
		loc:      loc,
		client:   &http.Client{Timeout: 30 * time.Second},
		db:       db,
		queries:  models.New(db),
		catalog:  catalog,
		live:     live,
	}
}

// Run syncs once immediately, then on every tick until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	if err := s.SyncOnce(ctx); err != nil {
		logger.Warnf("Schedule sync failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Schedule syncer stopped")
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				logger.Warnf("Schedule sync failed: %v", err)
			}
		}
	}
}

// SyncOnce fetches the schedule document and applies it if it changed.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	raw, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(raw)
	digest := hex.EncodeToString(sum[:])
	if digest == s.lastDigest {
		logger.Debugf("Schedule unchanged (digest %s)", digest[:12])
		return nil
	}

	rows, err := parseSessions(raw, s.loc)
	if err != nil {
		return err
	}

	if err := s.apply(ctx, digest, raw, rows); err != nil {
		return err
	}
	s.lastDigest = digest
	s.catalog.Invalidate()

	logger.Infof("Schedule synchronized: %d sessions (digest %s)", len(rows), digest[:12])
	if s.live != nil {
		s.live.Broadcast(types.LiveEvent{Type: types.LiveEventScheduleUpdated})
	}
	return nil
}

func (s *Syncer) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule source returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule body: %w", err)
	}
	return raw, nil
}

// apply stores the raw document and the normalized rows in one transaction,
// removing sessions that left the schedule.
func (s *Syncer) apply(ctx context.Context, digest string, raw []byte, rows []sessionRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sync transaction: %w", err)
	}
	defer tx.Rollback()

	txQueries := s.queries.WithTx(tx)

	if err := txQueries.UpsertConferenceDocument(ctx, models.UpsertConferenceDocumentParams{
		Digest: digest,
		Body:   string(raw),
	}); err != nil {
		return fmt.Errorf("failed to store schedule document: %w", err)
	}

	keep := make([]string, 0, len(rows))
	for _, row := range rows {
		if err := txQueries.UpsertSession(ctx, models.UpsertSessionParams{
			ID:       row.id,
			Title:    row.title,
			Room:     row.room,
			Speakers: row.speakers,
			StartsAt: row.startsAt,
			EndsAt:   row.endsAt,
		}); err != nil {
			return fmt.Errorf("failed to upsert session %s: %w", row.id, err)
		}
		keep = append(keep, row.id)
	}

	if err := txQueries.DeleteSessionsExcept(ctx, keep); err != nil {
		return fmt.Errorf("failed to prune removed sessions: %w", err)
	}

	return tx.Commit()
}
