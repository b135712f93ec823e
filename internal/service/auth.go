package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timhorst/horsthomes/internal/auth"
	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/store"
)

// ErrInvalidCredentials is returned verbatim to the client on any
// authentication failure. Unknown identity and wrong password are
// indistinguishable.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

// AuthService implements sign-in and password reset requests.
type AuthService struct {
	queries     *store.Queries
	events      *EventService
	emailDomain string
}

// NewAuthService creates an AuthService. emailDomain qualifies bare
// usernames into email addresses at sign-in.
func NewAuthService(db *sql.DB, events *EventService, emailDomain string) *AuthService {
	return &AuthService{
		queries:     store.New(db),
		events:      events,
		emailDomain: emailDomain,
	}
}

// QualifyIdentifier maps a sign-in identifier to the email used for lookup.
// An identifier containing "@" is already an email; anything else is a
// username qualified with the configured domain.
func (s *AuthService) QualifyIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return identifier
	}
	return fmt.Sprintf("%s@%s", strings.ToLower(identifier), s.emailDomain)
}

// Login verifies credentials and returns the authenticated user. Every
// failure path returns ErrInvalidCredentials; the underlying cause is only
// logged.
func (s *AuthService) Login(ctx context.Context, identifier, password, ip, path string) (model.User, error) {
	email := s.QualifyIdentifier(identifier)

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("user lookup failed during login", "error", err)
		}
		// Burn a hash comparison so unknown identities take as long as
		// wrong passwords.
		_, _ = auth.CheckPassword(password, auth.DummyHash)
		s.logFailure(ctx, email, ip, path)
		return model.User{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		s.logFailure(ctx, email, ip, path)
		return model.User{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, user.ID, newHash); err != nil {
				slog.Warn("password rehash not persisted", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := s.queries.UpdateUserLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		slog.Warn("last login not recorded", "error", err, "user_id", user.ID)
	}

	_ = s.events.LogAuthEvent(ctx, model.EventLevelInfo, "user logged in", &user.ID, ip, path, nil)
	return user, nil
}

// RequestPasswordReset records a reset request. The response to the client
// is identical whether or not the account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, identifier, ip, path string) {
	email := s.QualifyIdentifier(identifier)

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		_ = s.events.LogAuthEvent(ctx, model.EventLevelWarning, "password reset requested for unknown account", nil, ip, path, nil)
		return
	}

	token := uuid.NewString()
	_ = s.events.LogAuthEvent(ctx, model.EventLevelInfo, "password reset requested", &user.ID, ip, path,
		map[string]any{"reset_token": token})
	slog.Info("password reset requested", "user_id", user.ID)
}

func (s *AuthService) logFailure(ctx context.Context, email, ip, path string) {
	_ = s.events.LogAuthEvent(ctx, model.EventLevelWarning, "failed login attempt", nil, ip, path,
		map[string]any{"identifier": email})
}
