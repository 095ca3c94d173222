// Package models is the storage layer: row types plus hand-written queries
// over database/sql.
package models

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql used by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New returns a Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Account is a registered companion-app user. Accounts are anonymous: the
// device id is the only identity a client has to present.
type Account struct {
	ID          string
	DeviceID    string
	DisplayName sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session is one normalized conference session row, synchronized from the
// schedule source. StartsAt may be null when the schedule has not assigned
// a slot yet; the vote gate treats that as "not started".
type Session struct {
	ID    string
	Title string
	Room  sql.NullString
	// Speakers is a JSON array of speaker display names.
	Speakers  string
	StartsAt  sql.NullTime
	EndsAt    sql.NullTime
	UpdatedAt time.Time
}

// Vote is one account's rating for one session.
type Vote struct {
	AccountID string
	SessionID string
	Rating    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedItem is one announcement in the operator feed.
type FeedItem struct {
	Counter   int64
	ID        string
	Body      string
	CreatedAt time.Time
}

// ConferenceDocument is the raw schedule payload served to clients.
type ConferenceDocument struct {
	Digest    string
	Body      string
	UpdatedAt time.Time
}
