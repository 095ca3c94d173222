package models

import "context"

type FavoriteParams struct {
	AccountID string
	SessionID string
}

// AddFavorite marks a session as favorited. Adding an existing favorite is
// a no-op.
func (q *Queries) AddFavorite(ctx context.Context, arg FavoriteParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT OR IGNORE INTO favorites (account_id, session_id)
VALUES (?, ?);
`, arg.AccountID, arg.SessionID)
	return err
}

// DeleteFavorite removes a favorite. Removing a missing favorite is a no-op.
func (q *Queries) DeleteFavorite(ctx context.Context, arg FavoriteParams) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE account_id = ? AND session_id = ?`,
		arg.AccountID, arg.SessionID)
	return err
}

// ListFavoriteSessionIDs returns the session ids favorited by an account,
// oldest first.
func (q *Queries) ListFavoriteSessionIDs(ctx context.Context, accountID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT session_id FROM favorites WHERE account_id = ? ORDER BY created_at, session_id`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
