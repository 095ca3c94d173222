package models

import (
	"context"
	"database/sql"
)

type CreateAccountParams struct {
	ID       string
	DeviceID string
}

// CreateAccount inserts a new account row.
func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO accounts (id, device_id)
VALUES (?, ?);
`, arg.ID, arg.DeviceID)
	return err
}

const accountColumns = `id, device_id, display_name, created_at, updated_at`

func scanAccount(row *sql.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.DeviceID, &a.DisplayName, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetAccountByID fetches an account by primary key.
func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

// GetAccountByDeviceID fetches an account by its client device id.
func (q *Queries) GetAccountByDeviceID(ctx context.Context, deviceID string) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE device_id = ?`, deviceID))
}

type UpdateAccountProfileParams struct {
	DisplayName sql.NullString
	ID          string
}

// UpdateAccountProfile updates mutable profile fields.
func (q *Queries) UpdateAccountProfile(ctx context.Context, arg UpdateAccountProfileParams) error {
	_, err := q.db.ExecContext(ctx, `
UPDATE accounts
SET display_name = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?;
`, arg.DisplayName, arg.ID)
	return err
}
