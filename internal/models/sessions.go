package models

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type UpsertSessionParams struct {
	ID       string
	Title    string
	Room     sql.NullString
	Speakers string
	StartsAt sql.NullTime
	EndsAt   sql.NullTime
}

// UpsertSession inserts or replaces one synchronized session row.
func (q *Queries) UpsertSession(ctx context.Context, arg UpsertSessionParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO sessions (id, title, room, speakers, starts_at, ends_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	room = excluded.room,
	speakers = excluded.speakers,
	starts_at = excluded.starts_at,
	ends_at = excluded.ends_at,
	updated_at = CURRENT_TIMESTAMP;
`, arg.ID, arg.Title, arg.Room, arg.Speakers, arg.StartsAt, arg.EndsAt)
	return err
}

const sessionColumns = `id, title, room, speakers, starts_at, ends_at, updated_at`

func scanSessionRow(row *sql.Row) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.Title, &s.Room, &s.Speakers, &s.StartsAt, &s.EndsAt, &s.UpdatedAt)
	return s, err
}

// GetSessionByID fetches one session row.
func (q *Queries) GetSessionByID(ctx context.Context, id string) (Session, error) {
	return scanSessionRow(q.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
}

// ListSessions returns all sessions ordered by start time, unscheduled
// sessions last.
func (q *Queries) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY starts_at IS NULL, starts_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Title, &s.Room, &s.Speakers, &s.StartsAt, &s.EndsAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSessionsExcept removes sessions no longer present in the schedule
// source. With an empty keep list all sessions are removed.
func (q *Queries) DeleteSessionsExcept(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		_, err := q.db.ExecContext(ctx, `DELETE FROM sessions`)
		return err
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(keep)), ",")
	args := make([]any, 0, len(keep))
	for _, id := range keep {
		args = append(args, id)
	}

	query := fmt.Sprintf(`DELETE FROM sessions WHERE id NOT IN (%s)`, placeholders)
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}
