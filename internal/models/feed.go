package models

import "context"

type CreateFeedItemParams struct {
	ID   string
	Body string
}

// CreateFeedItem appends one announcement and returns the stored row.
func (q *Queries) CreateFeedItem(ctx context.Context, arg CreateFeedItemParams) (FeedItem, error) {
	var item FeedItem
	err := q.db.QueryRowContext(ctx, `
INSERT INTO feed_items (id, body)
VALUES (?, ?)
RETURNING counter, id, body, created_at;
`, arg.ID, arg.Body).Scan(&item.Counter, &item.ID, &item.Body, &item.CreatedAt)
	return item, err
}

type ListFeedItemsParams struct {
	// Before and After bound the counter range; zero means unset.
	Before int64
	After  int64
	Limit  int64
}

// ListFeedItems returns announcements newest first, bounded by the cursor
// range.
func (q *Queries) ListFeedItems(ctx context.Context, arg ListFeedItemsParams) ([]FeedItem, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT counter, id, body, created_at
FROM feed_items
WHERE (? = 0 OR counter < ?)
  AND (? = 0 OR counter > ?)
ORDER BY counter DESC
LIMIT ?`,
		arg.Before, arg.Before, arg.After, arg.After, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeedItem
	for rows.Next() {
		var item FeedItem
		if err := rows.Scan(&item.Counter, &item.ID, &item.Body, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
