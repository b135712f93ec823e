// Package handler implements the JSON HTTP API: authentication, the three
// authoring surfaces, image acquisition, public inquiries, and health.
package handler

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/timhorst/horsthomes/internal/middleware"
	"github.com/timhorst/horsthomes/internal/service"
)

// Handler carries the services behind the HTTP API.
type Handler struct {
	sessions  *scs.SessionManager
	auth      *service.AuthService
	content   *service.ContentService
	images    *service.ImageService
	inquiries *service.InquiryService
	events    *service.EventService
	loginProt *middleware.LoginProtection
}

// New creates a Handler.
func New(
	sessions *scs.SessionManager,
	auth *service.AuthService,
	content *service.ContentService,
	images *service.ImageService,
	inquiries *service.InquiryService,
	events *service.EventService,
	loginProt *middleware.LoginProtection,
) *Handler {
	return &Handler{
		sessions:  sessions,
		auth:      auth,
		content:   content,
		images:    images,
		inquiries: inquiries,
		events:    events,
		loginProt: loginProt,
	}
}

// sessionKeyDraftID holds the per-session draft identifier used to key
// in-flight submissions and pending images.
const sessionKeyDraftID = "draft_id"

// draftKey returns the draft key for a surface, creating the session draft
// id on first use. One session authors at most one draft per surface.
func (h *Handler) draftKey(r *http.Request, surface string) string {
	id := h.sessions.GetString(r.Context(), sessionKeyDraftID)
	if id == "" {
		id = uuid.NewString()
		h.sessions.Put(r.Context(), sessionKeyDraftID, id)
	}
	return id + ":" + surface
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// confirmed reports whether the request carries the explicit delete
// confirmation. Deletes without it are rejected.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
