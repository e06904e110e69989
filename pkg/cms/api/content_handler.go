package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/nappsng/cms/pkg/cms"
)

// ContentBlockHandler handles HTTP requests for content blocks.
type ContentBlockHandler struct {
	service cms.Service
}

// NewContentBlockHandler creates a new content block handler
func NewContentBlockHandler(service cms.Service) *ContentBlockHandler {
	return &ContentBlockHandler{service: service}
}

// Routes returns the routes for content blocks
func (h *ContentBlockHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateContentBlock)
	r.Get("/", h.ListContentBlocks)
	r.Get("/key/{key}", h.GetContentBlockByKey)
	r.Get("/{id}", h.GetContentBlock)
	r.Put("/{id}", h.UpdateContentBlock)
	r.Delete("/{id}", h.DeleteContentBlock)

	return r
}

// CreateContentBlockRequest is the request body for creating a content block
type CreateContentBlockRequest struct {
	Key         string               `json:"key" validate:"required"`
	Kind        string               `json:"kind" validate:"required"`
	Title       string               `json:"title" validate:"required"`
	Subtitle    string               `json:"subtitle"`
	Description string               `json:"description"`
	Body        map[string]any       `json:"body"`
	Media       []cms.StoredResource `json:"media"`
	Active      *bool                `json:"active"`
	SortOrder   *int                 `json:"sort_order"`
	Metadata    map[string]any       `json:"metadata"`
}

// UpdateContentBlockRequest is the request body for patching a content block.
// Absent fields are left unchanged.
type UpdateContentBlockRequest struct {
	Kind        *string              `json:"kind"`
	Title       *string              `json:"title"`
	Subtitle    *string              `json:"subtitle"`
	Description *string              `json:"description"`
	Body        map[string]any       `json:"body"`
	Media       []cms.StoredResource `json:"media"`
	Active      *bool                `json:"active"`
	SortOrder   *int                 `json:"sort_order"`
	Metadata    map[string]any       `json:"metadata"`
}

// CreateContentBlock creates a new content block
func (h *ContentBlockHandler) CreateContentBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateContentBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	kind, err := cms.ParseBlockKind(req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.CreateContentBlock(r.Context(), cms.CreateContentBlockRequest{
		Key:         req.Key,
		Kind:        kind,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Body:        req.Body,
		Media:       req.Media,
		Active:      req.Active,
		SortOrder:   req.SortOrder,
		Metadata:    req.Metadata,
	})
	if err != nil {
		slog.Error("Failed to create content block", "key", req.Key, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Content block created", "block_id", block.ID.String(), "key", block.Key)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, block)
}

// GetContentBlock retrieves a content block by ID
func (h *ContentBlockHandler) GetContentBlock(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid content block ID", http.StatusBadRequest)
		return
	}

	block, err := h.service.GetContentBlock(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, block)
}

// GetContentBlockByKey retrieves a content block by its stable key
func (h *ContentBlockHandler) GetContentBlockByKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	block, err := h.service.GetContentBlockByKey(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, block)
}

// UpdateContentBlock patches a content block by ID
func (h *ContentBlockHandler) UpdateContentBlock(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid content block ID", http.StatusBadRequest)
		return
	}

	var req UpdateContentBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := cms.UpdateContentBlockRequest{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Body:        req.Body,
		Media:       req.Media,
		Active:      req.Active,
		SortOrder:   req.SortOrder,
		Metadata:    req.Metadata,
	}
	if req.Kind != nil {
		kind, err := cms.ParseBlockKind(*req.Kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		patch.Kind = &kind
	}

	block, err := h.service.UpdateContentBlock(r.Context(), id, patch)
	if err != nil {
		slog.Error("Failed to update content block", "block_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Content block updated", "block_id", idStr)
	render.JSON(w, r, block)
}

// DeleteContentBlock deletes a content block by ID
func (h *ContentBlockHandler) DeleteContentBlock(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid content block ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteContentBlock(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content block deleted", "block_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListContentBlocks lists content blocks with optional kind/active filters.
// Query parameters: kind, active, page, limit.
func (h *ContentBlockHandler) ListContentBlocks(w http.ResponseWriter, r *http.Request) {
	req := cms.ListContentBlocksRequest{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Active: queryBool(r, "active"),
	}

	if kindStr := r.URL.Query().Get("kind"); kindStr != "" {
		kind, err := cms.ParseBlockKind(kindStr)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Kind = &kind
	}

	page, err := h.service.ListContentBlocks(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list content blocks", "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, page)
}
