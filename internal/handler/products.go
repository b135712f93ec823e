package handler

import (
	"errors"
	"net/http"

	"github.com/timhorst/horsthomes/internal/middleware"
	"github.com/timhorst/horsthomes/internal/service"
)

// productVariantPayload is one variant row of the product authoring form.
type productVariantPayload struct {
	Name  string `json:"name"`
	Price any    `json:"price"`
	Stock any    `json:"stock"`
}

// productRequest is the product authoring payload.
type productRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Price       any                     `json:"price"`
	InStock     bool                    `json:"in_stock"`
	Variants    []productVariantPayload `json:"variants"`
	Tags        []string                `json:"tags"`
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.content.ListProducts(r.Context(),
		r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	writeJSONSuccess(w, map[string]any{"products": products})
}

// CreateProduct handles POST /api/products. Admin only.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	variants := make([]map[string]any, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = map[string]any{
			"name":  v.Name,
			"price": v.Price,
			"stock": v.Stock,
		}
	}

	draftKey := h.draftKey(r, service.SurfaceProduct.Name)
	imageURL := h.images.ResolvedURL(draftKey, "image")

	product, errs, err := h.content.SubmitProduct(r.Context(),
		middleware.GetUserID(r), draftKey,
		map[string]any{
			"title":       req.Title,
			"description": req.Description,
			"category":    req.Category,
			"price":       req.Price,
			"in_stock":    req.InStock,
		},
		variants, req.Tags, imageURL)
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	h.images.Discard(draftKey)
	writeJSONCreated(w, map[string]any{"product": product})
}

// DeleteProduct handles DELETE /api/products/{id}?confirm=true.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if !confirmed(r) {
		writeJSONError(w, http.StatusBadRequest, "Deletion requires confirmation")
		return
	}

	if err := h.content.DeleteProduct(r.Context(), middleware.GetUserID(r), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	writeJSONSuccess(w, nil)
}
