package handler

import (
	"errors"
	"net/http"

	"github.com/timhorst/horsthomes/internal/middleware"
	"github.com/timhorst/horsthomes/internal/service"
)

// portfolioRequest is the portfolio authoring payload. The before and after
// images come from the image pipeline.
type portfolioRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Location           string   `json:"location"`
	Date               string   `json:"date"`
	Status             string   `json:"status"`
	Details            []string `json:"details"`
	TestimonialContent string   `json:"testimonial_content"`
	TestimonialAuthor  string   `json:"testimonial_author"`
	TestimonialRole    string   `json:"testimonial_role"`
}

// ListPortfolioProjects handles GET /api/portfolio.
func (h *Handler) ListPortfolioProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.content.ListPortfolioProjects(r.Context(),
		r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load portfolio projects")
		return
	}
	writeJSONSuccess(w, map[string]any{"projects": projects})
}

// CreatePortfolioProject handles POST /api/portfolio. Admin only. The after
// image field must have a resolved upload; the before image is optional.
func (h *Handler) CreatePortfolioProject(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	draftKey := h.draftKey(r, service.SurfacePortfolio.Name)
	beforeURL := h.images.ResolvedURL(draftKey, "before_image")
	afterURL := h.images.ResolvedURL(draftKey, "after_image")

	project, errs, err := h.content.SubmitPortfolioProject(r.Context(),
		middleware.GetUserID(r), draftKey,
		map[string]any{
			"title":               req.Title,
			"description":         req.Description,
			"category":            req.Category,
			"location":            req.Location,
			"date":                req.Date,
			"status":              req.Status,
			"testimonial_content": req.TestimonialContent,
			"testimonial_author":  req.TestimonialAuthor,
			"testimonial_role":    req.TestimonialRole,
		},
		req.Details, beforeURL, afterURL)
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	h.images.Discard(draftKey)
	writeJSONCreated(w, map[string]any{"project": project})
}

// DeletePortfolioProject handles DELETE /api/portfolio/{id}?confirm=true.
func (h *Handler) DeletePortfolioProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if !confirmed(r) {
		writeJSONError(w, http.StatusBadRequest, "Deletion requires confirmation")
		return
	}

	if err := h.content.DeletePortfolioProject(r.Context(), middleware.GetUserID(r), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Portfolio project not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete portfolio project")
		return
	}
	writeJSONSuccess(w, nil)
}
