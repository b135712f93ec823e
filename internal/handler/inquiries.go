package handler

import (
	"net/http"
)

// contactRequest is the public contact form payload.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubmitContact handles POST /api/contact. Public.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, errs, err := h.inquiries.SubmitContact(r.Context(), map[string]any{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"message": req.Message,
	})
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	writeJSONCreated(w, map[string]any{"id": id})
}

// quoteRequest is the public quote-request payload.
type quoteRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"project_type"`
	Timeline    string `json:"timeline"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

// SubmitQuote handles POST /api/quote. Public.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, errs, err := h.inquiries.SubmitQuote(r.Context(), map[string]any{
		"name":         req.Name,
		"email":        req.Email,
		"phone":        req.Phone,
		"project_type": req.ProjectType,
		"timeline":     req.Timeline,
		"budget":       req.Budget,
		"message":      req.Message,
	})
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to send quote request")
		return
	}

	writeJSONCreated(w, map[string]any{"id": id})
}

// ListContactMessages handles GET /api/admin/contact-messages. Admin only.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.inquiries.ListContactMessages(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load contact messages")
		return
	}
	writeJSONSuccess(w, map[string]any{"messages": msgs})
}

// ListQuoteRequests handles GET /api/admin/quote-requests. Admin only.
func (h *Handler) ListQuoteRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.inquiries.ListQuoteRequests(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load quote requests")
		return
	}
	writeJSONSuccess(w, map[string]any{"requests": reqs})
}
