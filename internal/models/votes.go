package models

import "context"

type VoteKeyParams struct {
	AccountID string
	SessionID string
}

// GetVote fetches one account's vote for one session.
func (q *Queries) GetVote(ctx context.Context, arg VoteKeyParams) (Vote, error) {
	var v Vote
	err := q.db.QueryRowContext(ctx, `
SELECT account_id, session_id, rating, created_at, updated_at
FROM votes WHERE account_id = ? AND session_id = ?`,
		arg.AccountID, arg.SessionID).
		Scan(&v.AccountID, &v.SessionID, &v.Rating, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

type PutVoteParams struct {
	AccountID string
	SessionID string
	Rating    int64
}

// CreateVote inserts a first vote for the (account, session) pair.
func (q *Queries) CreateVote(ctx context.Context, arg PutVoteParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO votes (account_id, session_id, rating)
VALUES (?, ?, ?);
`, arg.AccountID, arg.SessionID, arg.Rating)
	return err
}

// UpdateVote revises an existing vote.
func (q *Queries) UpdateVote(ctx context.Context, arg PutVoteParams) error {
	_, err := q.db.ExecContext(ctx, `
UPDATE votes
SET rating = ?, updated_at = CURRENT_TIMESTAMP
WHERE account_id = ? AND session_id = ?;
`, arg.Rating, arg.AccountID, arg.SessionID)
	return err
}

// DeleteVote removes a vote. Removing a missing vote is a no-op.
func (q *Queries) DeleteVote(ctx context.Context, arg VoteKeyParams) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM votes WHERE account_id = ? AND session_id = ?`,
		arg.AccountID, arg.SessionID)
	return err
}

// ListVotes returns all votes cast by an account.
func (q *Queries) ListVotes(ctx context.Context, accountID string) ([]Vote, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT account_id, session_id, rating, created_at, updated_at
FROM votes WHERE account_id = ? ORDER BY session_id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vote
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.AccountID, &v.SessionID, &v.Rating, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// VoteCount is one rating bucket in a session summary.
type VoteCount struct {
	Rating int64
	Count  int64
}

// CountVotesBySession aggregates votes for one session by rating value.
func (q *Queries) CountVotesBySession(ctx context.Context, sessionID string) ([]VoteCount, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT rating, COUNT(*) FROM votes WHERE session_id = ? GROUP BY rating ORDER BY rating`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VoteCount
	for rows.Next() {
		var c VoteCount
		if err := rows.Scan(&c.Rating, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
