package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/timhorst/horsthomes/internal/form"
	"github.com/timhorst/horsthomes/internal/middleware"
)

// loginRequest is the sign-in payload. The identifier may be a bare
// username or a full email address.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, errs := form.LoginSchema().Validate(map[string]any{
		"identifier": req.Identifier,
		"password":   req.Password,
	})
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	email := h.auth.QualifyIdentifier(req.Identifier)

	if locked, remaining := h.loginProt.IsAccountLocked(email); locked {
		writeJSONError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Account temporarily locked. Try again in %d minutes.",
				int(remaining.Minutes())+1))
		return
	}

	user, err := h.auth.Login(r.Context(), req.Identifier, req.Password,
		r.RemoteAddr, r.URL.Path)
	if err != nil {
		h.loginProt.RecordFailedAttempt(email)
		// The failure message is surfaced verbatim.
		writeJSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.loginProt.RecordSuccessfulLogin(email)

	// New session token on privilege change
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Session error")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	writeJSONSuccess(w, map[string]any{
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Session error")
		return
	}
	writeJSONSuccess(w, nil)
}

// Session handles GET /api/auth/session. It reports the current identity
// and the admin capability derived from the roster.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONSuccess(w, map[string]any{
			"authenticated": false,
			"capability":    middleware.GetCapability(r),
		})
		return
	}

	var lastLogin *time.Time
	if user.LastLoginAt.Valid {
		t := user.LastLoginAt.Time
		lastLogin = &t
	}

	writeJSONSuccess(w, map[string]any{
		"authenticated": true,
		"capability":    middleware.GetCapability(r),
		"user": map[string]any{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"last_login_at": lastLogin,
		},
	})
}

// passwordResetRequest is the reset-request payload.
type passwordResetRequest struct {
	Identifier string `json:"identifier"`
}

// RequestPasswordReset handles POST /api/auth/password-reset. The response
// is the same whether or not the account exists.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Identifier == "" {
		writeJSONError(w, http.StatusBadRequest, "Username or email is required")
		return
	}

	h.auth.RequestPasswordReset(r.Context(), req.Identifier, r.RemoteAddr, r.URL.Path)

	writeJSONSuccess(w, map[string]any{
		"message": "If the account exists, a reset link has been sent.",
	})
}
