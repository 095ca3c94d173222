package models

import "context"

type UpsertConferenceDocumentParams struct {
	Digest string
	Body   string
}

// UpsertConferenceDocument replaces the stored raw schedule document.
func (q *Queries) UpsertConferenceDocument(ctx context.Context, arg UpsertConferenceDocumentParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO conference_documents (id, digest, body, updated_at)
VALUES (1, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
	digest = excluded.digest,
	body = excluded.body,
	updated_at = CURRENT_TIMESTAMP;
`, arg.Digest, arg.Body)
	return err
}

// GetConferenceDocument returns the stored raw schedule document.
func (q *Queries) GetConferenceDocument(ctx context.Context) (ConferenceDocument, error) {
	var doc ConferenceDocument
	err := q.db.QueryRowContext(ctx,
		`SELECT digest, body, updated_at FROM conference_documents WHERE id = 1`).
		Scan(&doc.Digest, &doc.Body, &doc.UpdatedAt)
	return doc, err
}
