package store

import (
	"context"
	"time"

	"github.com/timhorst/horsthomes/internal/model"
)

// GetAdminRosterEntry looks up the roster entry for a user. Absence is
// reported as sql.ErrNoRows and means the user is not an administrator.
func (q *Queries) GetAdminRosterEntry(ctx context.Context, userID int64) (model.AdminRosterEntry, error) {
	var e model.AdminRosterEntry
	err := q.db.QueryRowContext(ctx,
		`SELECT id, user_id, username, email, created_at
		 FROM admin_users WHERE user_id = ?`, userID).
		Scan(&e.ID, &e.UserID, &e.Username, &e.Email, &e.CreatedAt)
	return e, err
}

// CreateAdminRosterEntryParams holds the fields for a new roster entry.
type CreateAdminRosterEntryParams struct {
	UserID   int64
	Username string
	Email    string
}

// CreateAdminRosterEntry grants a user the admin capability.
func (q *Queries) CreateAdminRosterEntry(ctx context.Context, p CreateAdminRosterEntryParams) (model.AdminRosterEntry, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO admin_users (user_id, username, email, created_at)
		 VALUES (?, ?, ?, ?)`,
		p.UserID, p.Username, p.Email, time.Now().UTC())
	if err != nil {
		return model.AdminRosterEntry{}, err
	}
	return q.GetAdminRosterEntry(ctx, p.UserID)
}
