package handler

import (
	"errors"
	"net/http"

	"github.com/timhorst/horsthomes/internal/middleware"
	"github.com/timhorst/horsthomes/internal/service"
)

// blogPostRequest is the blog authoring payload. The cover image comes from
// the image pipeline, not from this payload.
type blogPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Author   string   `json:"author"`
	ReadTime string   `json:"read_time"`
	Tags     []string `json:"tags"`
}

// ListBlogPosts handles GET /api/blog. Supports q (case-insensitive
// substring over title and content) and category query parameters.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListBlogPosts(r.Context(),
		r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load blog posts")
		return
	}
	writeJSONSuccess(w, map[string]any{"posts": posts})
}

// CreateBlogPost handles POST /api/blog. Admin only.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	draftKey := h.draftKey(r, service.SurfaceBlog.Name)
	imageURL := h.images.ResolvedURL(draftKey, "image")

	post, errs, err := h.content.SubmitBlogPost(r.Context(),
		middleware.GetUserID(r), draftKey,
		map[string]any{
			"title":     req.Title,
			"content":   req.Content,
			"excerpt":   req.Excerpt,
			"category":  req.Category,
			"author":    req.Author,
			"read_time": req.ReadTime,
		},
		req.Tags, imageURL)
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	h.images.Discard(draftKey)
	writeJSONCreated(w, map[string]any{"post": post})
}

// DeleteBlogPost handles DELETE /api/blog/{id}?confirm=true. Admin only.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if !confirmed(r) {
		writeJSONError(w, http.StatusBadRequest, "Deletion requires confirmation")
		return
	}

	if err := h.content.DeleteBlogPost(r.Context(), middleware.GetUserID(r), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete blog post")
		return
	}
	writeJSONSuccess(w, nil)
}

// writeSubmitError maps submission precondition failures to HTTP statuses.
// Persistence failures carry the store's message verbatim.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionInFlight):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUploadRequired):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
