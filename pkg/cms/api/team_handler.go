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

// TeamMemberHandler handles HTTP requests for the team directory.
type TeamMemberHandler struct {
	service cms.Service
}

// NewTeamMemberHandler creates a new team member handler
func NewTeamMemberHandler(service cms.Service) *TeamMemberHandler {
	return &TeamMemberHandler{service: service}
}

// Routes returns the routes for team members
func (h *TeamMemberHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateTeamMember)
	r.Get("/", h.ListTeamMembers)
	r.Get("/{id}", h.GetTeamMember)
	r.Put("/{id}", h.UpdateTeamMember)
	r.Delete("/{id}", h.DeleteTeamMember)

	return r
}

// CreateTeamMemberRequest is the request body for creating a team member
type CreateTeamMemberRequest struct {
	FirstName      string              `json:"first_name" validate:"required"`
	LastName       string              `json:"last_name" validate:"required"`
	Category       string              `json:"category"`
	Role           string              `json:"role"`
	Email          string              `json:"email" validate:"omitempty,email"`
	Phone          string              `json:"phone"`
	Bio            string              `json:"bio"`
	Photo          *cms.StoredResource `json:"photo"`
	Achievements   []string            `json:"achievements"`
	Qualifications []string            `json:"qualifications"`
	Active         *bool               `json:"active"`
	Featured       *bool               `json:"featured"`
	SortOrder      *int                `json:"sort_order"`
	Metadata       map[string]any      `json:"metadata"`
}

// UpdateTeamMemberRequest is the request body for patching a team member.
// Absent fields are left unchanged.
type UpdateTeamMemberRequest struct {
	FirstName      *string             `json:"first_name"`
	LastName       *string             `json:"last_name"`
	Category       *string             `json:"category"`
	Role           *string             `json:"role"`
	Email          *string             `json:"email"`
	Phone          *string             `json:"phone"`
	Bio            *string             `json:"bio"`
	Photo          *cms.StoredResource `json:"photo"`
	Achievements   []string            `json:"achievements"`
	Qualifications []string            `json:"qualifications"`
	Active         *bool               `json:"active"`
	Featured       *bool               `json:"featured"`
	SortOrder      *int                `json:"sort_order"`
	Metadata       map[string]any      `json:"metadata"`
}

// CreateTeamMember creates a new team member
func (h *TeamMemberHandler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	createReq := cms.CreateTeamMemberRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Bio:            req.Bio,
		Photo:          req.Photo,
		Achievements:   req.Achievements,
		Qualifications: req.Qualifications,
		Active:         req.Active,
		Featured:       req.Featured,
		SortOrder:      req.SortOrder,
		Metadata:       req.Metadata,
	}
	if req.Category != "" {
		category, err := cms.ParseMemberCategory(req.Category)
		if err != nil {
			writeError(w, r, err)
			return
		}
		createReq.Category = category
	}
	if req.Role != "" {
		role, err := cms.ParseMemberRole(req.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}
		createReq.Role = role
	}

	member, err := h.service.CreateTeamMember(r.Context(), createReq)
	if err != nil {
		slog.Error("Failed to create team member", "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Team member created", "member_id", member.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, member)
}

// GetTeamMember retrieves a team member by ID
func (h *TeamMemberHandler) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid team member ID", http.StatusBadRequest)
		return
	}

	member, err := h.service.GetTeamMember(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, member)
}

// UpdateTeamMember patches a team member by ID
func (h *TeamMemberHandler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid team member ID", http.StatusBadRequest)
		return
	}

	var req UpdateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := cms.UpdateTeamMemberRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Bio:            req.Bio,
		Photo:          req.Photo,
		Achievements:   req.Achievements,
		Qualifications: req.Qualifications,
		Active:         req.Active,
		Featured:       req.Featured,
		SortOrder:      req.SortOrder,
		Metadata:       req.Metadata,
	}
	if req.Category != nil {
		category, err := cms.ParseMemberCategory(*req.Category)
		if err != nil {
			writeError(w, r, err)
			return
		}
		patch.Category = &category
	}
	if req.Role != nil {
		role, err := cms.ParseMemberRole(*req.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}
		patch.Role = &role
	}

	member, err := h.service.UpdateTeamMember(r.Context(), id, patch)
	if err != nil {
		slog.Error("Failed to update team member", "member_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Team member updated", "member_id", idStr)
	render.JSON(w, r, member)
}

// DeleteTeamMember deletes a team member by ID
func (h *TeamMemberHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid team member ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTeamMember(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Team member deleted", "member_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListTeamMembers lists team members with optional filters.
// Query parameters: category, role, active, featured, page, limit.
func (h *TeamMemberHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	req := cms.ListTeamMembersRequest{
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
		Active:   queryBool(r, "active"),
		Featured: queryBool(r, "featured"),
	}

	if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
		category, err := cms.ParseMemberCategory(categoryStr)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Category = &category
	}
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role, err := cms.ParseMemberRole(roleStr)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Role = &role
	}

	page, err := h.service.ListTeamMembers(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list team members", "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, page)
}
