package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/store"
)

// CapabilityService resolves the admin capability for a session by looking
// the authenticated identity up in the admin roster.
type CapabilityService struct {
	queries *store.Queries
}

// NewCapabilityService creates a CapabilityService.
func NewCapabilityService(db *sql.DB) *CapabilityService {
	return &CapabilityService{queries: store.New(db)}
}

// Resolve derives the capability for a user id. Zero (no authenticated
// identity) and roster absence both yield a non-admin capability. A roster
// lookup error fails closed: it is logged and treated as terminal for this
// evaluation, with no retry, and the user is not an admin.
func (s *CapabilityService) Resolve(ctx context.Context, userID int64) model.Capability {
	if userID == 0 {
		return model.Capability{}
	}

	entry, err := s.queries.GetAdminRosterEntry(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("admin roster lookup failed, failing closed", "error", err, "user_id", userID)
		}
		return model.Capability{}
	}

	return model.Capability{IsAdmin: true, Username: entry.Username}
}
