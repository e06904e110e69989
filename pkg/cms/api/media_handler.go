package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/nappsng/cms/pkg/cms"
	"github.com/nappsng/cms/pkg/utils"
)

// maxUploadBytes caps multipart form memory for media uploads.
const maxUploadBytes = 32 << 20 // 32 MB

// MediaHandler handles media upload and deletion.
type MediaHandler struct {
	service cms.Service
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service cms.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Routes returns the routes for media
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadMedia)
	r.Delete("/*", h.DeleteMedia)

	return r
}

// UploadMedia accepts a multipart form with a "file" part and optional
// folder, public_id, crop, quality, width and height fields.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing 'file' form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	opts := cms.UploadOptions{
		Folder:   r.FormValue("folder"),
		PublicID: r.FormValue("public_id"),
		Crop:     r.FormValue("crop"),
		Quality:  r.FormValue("quality"),
		MimeType: header.Header.Get("Content-Type"),
	}
	if opts.PublicID == "" {
		// Derive a stable ID from the file name; the service falls back
		// to a random one when the name yields nothing usable.
		opts.PublicID = utils.PublicIDFromFilename(header.Filename)
	}
	if v := r.FormValue("width"); v != "" {
		if width, err := strconv.Atoi(v); err == nil {
			opts.Width = width
		}
	}
	if v := r.FormValue("height"); v != "" {
		if height, err := strconv.Atoi(v); err == nil {
			opts.Height = height
		}
	}

	resource, err := h.service.UploadMedia(r.Context(), file, opts)
	if err != nil {
		slog.Error("Failed to upload media", "file_name", header.Filename, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Media uploaded", "public_id", resource.PublicID, "bytes", resource.Bytes)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resource)
}

// DeleteMedia removes an uploaded resource by public ID. The wildcard keeps
// folder-qualified IDs like "napps/logo" addressable as one path.
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	if publicID == "" {
		http.Error(w, "Missing public ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteMedia(r.Context(), publicID); err != nil {
		slog.Error("Failed to delete media", "public_id", publicID, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Media deleted", "public_id", publicID)
	w.WriteHeader(http.StatusNoContent)
}
