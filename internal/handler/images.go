package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timhorst/horsthomes/internal/imaging"
	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/service"
)

// maxUploadBody caps multipart upload bodies above the largest per-surface
// ceiling so oversized files are rejected by the gate, not the transport.
const maxUploadBody = model.MaxPortfolioImageSize + 1<<20

// StageImage handles POST /api/images/{surface}/{field}. The multipart
// "file" part is gated and staged for cropping.
func (h *Handler) StageImage(w http.ResponseWriter, r *http.Request) {
	surface, ok := service.SurfaceByName(chi.URLParam(r, "surface"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown surface")
		return
	}
	field := chi.URLParam(r, "field")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	draftKey := h.draftKey(r, surface.Name)
	if err := h.images.Stage(draftKey, field, surface, header.Filename, data); err != nil {
		if errors.Is(err, imaging.ErrInvalidFileType) || errors.Is(err, imaging.ErrFileTooLarge) {
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSONSuccess(w, map[string]any{
		"state": h.images.State(draftKey, field).State.String(),
	})
}

// cropRequest carries the pixel rectangle selected during the crop step.
type cropRequest struct {
	Rect imaging.Rect `json:"rect"`
}

// CropImage handles POST /api/images/{surface}/{field}/crop. The staged
// file is cropped, uploaded, and resolved to its public URL.
func (h *Handler) CropImage(w http.ResponseWriter, r *http.Request) {
	surface, ok := service.SurfaceByName(chi.URLParam(r, "surface"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown surface")
		return
	}
	field := chi.URLParam(r, "field")

	var req cropRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	draftKey := h.draftKey(r, surface.Name)
	url, err := h.images.Finish(r.Context(), draftKey, field, surface, req.Rect)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSONSuccess(w, map[string]any{"url": url})
}

// CancelImage handles POST /api/images/{surface}/{field}/cancel. The staged
// file is discarded without uploading.
func (h *Handler) CancelImage(w http.ResponseWriter, r *http.Request) {
	surface, ok := service.SurfaceByName(chi.URLParam(r, "surface"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown surface")
		return
	}
	field := chi.URLParam(r, "field")

	h.images.Cancel(h.draftKey(r, surface.Name), field)
	writeJSONSuccess(w, nil)
}

// ImageState handles GET /api/images/{surface}/{field}.
func (h *Handler) ImageState(w http.ResponseWriter, r *http.Request) {
	surface, ok := service.SurfaceByName(chi.URLParam(r, "surface"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown surface")
		return
	}
	field := chi.URLParam(r, "field")

	p := h.images.State(h.draftKey(r, surface.Name), field)
	writeJSONSuccess(w, map[string]any{
		"state":  p.State.String(),
		"url":    p.URL,
		"reason": p.Reason,
	})
}
