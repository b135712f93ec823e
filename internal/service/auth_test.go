package service_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/timhorst/horsthomes/internal/auth"
	"github.com/timhorst/horsthomes/internal/service"
	"github.com/timhorst/horsthomes/internal/store"
	"github.com/timhorst/horsthomes/internal/testutil"
)

// legacyHash builds a valid argon2id hash with older, weaker parameters.
func legacyHash(t *testing.T, password string) string {
	t.Helper()
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatalf("generating salt: %v", err)
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 16*1024, 1, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 16*1024, 1, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func authService(t *testing.T) (*service.AuthService, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	events := service.NewEventService(db)
	return service.NewAuthService(db, events, "admin.timhorst.com"), store.New(db), cleanup
}

func TestQualifyIdentifier(t *testing.T) {
	svc, _, cleanup := authService(t)
	defer cleanup()

	tests := []struct {
		in   string
		want string
	}{
		{"horst", "horst@admin.timhorst.com"},
		{"Horst", "horst@admin.timhorst.com"},
		{"  horst  ", "horst@admin.timhorst.com"},
		{"tim@example.com", "tim@example.com"},
		{"Tim@Example.com", "Tim@Example.com"},
	}
	for _, tt := range tests {
		if got := svc.QualifyIdentifier(tt.in); got != tt.want {
			t.Errorf("QualifyIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoginUnknownIdentity(t *testing.T) {
	svc, _, cleanup := authService(t)
	defer cleanup()

	_, err := svc.Login(context.Background(), "nobody", "whatever", "203.0.113.9", "/api/auth/login")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	// The client-facing message is fixed and reveals nothing about which
	// part of the credential pair was wrong.
	assert.Equal(t, "Invalid login credentials", err.Error())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, q, cleanup := authService(t)
	defer cleanup()
	ctx := context.Background()

	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	_, err = q.CreateUser(ctx, store.CreateUserParams{
		Email: "horst@admin.timhorst.com", Name: "Tim", PasswordHash: hash,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "horst", "wrong-password", "203.0.113.9", "/api/auth/login")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, "Invalid login credentials", err.Error())
}

func TestLoginSuccess(t *testing.T) {
	svc, q, cleanup := authService(t)
	defer cleanup()
	ctx := context.Background()

	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	created, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "horst@admin.timhorst.com", Name: "Tim", PasswordHash: hash,
	})
	require.NoError(t, err)

	// Bare username and full email both authenticate the same account.
	user, err := svc.Login(ctx, "horst", "correct-password", "203.0.113.9", "/api/auth/login")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	user, err = svc.Login(ctx, "horst@admin.timhorst.com", "correct-password", "203.0.113.9", "/api/auth/login")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	stored, err := q.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.LastLoginAt.Valid, "successful login records last_login_at")
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	svc, q, cleanup := authService(t)
	defer cleanup()
	ctx := context.Background()

	// A valid argon2id hash with weaker-than-current parameters.
	legacy := legacyHash(t, "correct-password")
	created, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "horst@admin.timhorst.com", Name: "Tim", PasswordHash: legacy,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "horst", "correct-password", "203.0.113.9", "/api/auth/login")
	require.NoError(t, err)

	stored, err := q.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, legacy, stored.PasswordHash, "legacy hash is upgraded on login")
	assert.False(t, auth.NeedsRehash(stored.PasswordHash))
}

func TestRequestPasswordResetSilentOnUnknownAccount(t *testing.T) {
	svc, _, cleanup := authService(t)
	defer cleanup()

	// Must not panic or error for unknown accounts; the HTTP layer sends
	// the same response either way.
	svc.RequestPasswordReset(context.Background(), "nobody", "203.0.113.9", "/api/auth/password-reset")
}
