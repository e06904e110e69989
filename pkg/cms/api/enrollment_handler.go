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

// EnrollmentHandler handles HTTP requests for enrollment statistics.
type EnrollmentHandler struct {
	service cms.Service
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(service cms.Service) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Routes returns the routes for enrollment records
func (h *EnrollmentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateEnrollment)
	r.Get("/", h.ListEnrollments)
	r.Get("/school/{schoolID}/*", h.GetEnrollmentBySchoolYear)
	r.Get("/{id}", h.GetEnrollment)
	r.Put("/{id}", h.UpdateEnrollment)
	r.Delete("/{id}", h.DeleteEnrollment)

	return r
}

// CreateEnrollmentRequest is the request body for creating an enrollment record
type CreateEnrollmentRequest struct {
	SchoolID     string               `json:"school_id" validate:"required,uuid"`
	AcademicYear string               `json:"academic_year" validate:"required"`
	Counts       cms.EnrollmentCounts `json:"counts"`
	LegacyTotal  int                  `json:"legacy_total"`
	Metadata     map[string]any       `json:"metadata"`
}

// UpdateEnrollmentRequest is the request body for patching an enrollment
// record. The counters are replaced as a whole when counts is present.
type UpdateEnrollmentRequest struct {
	AcademicYear *string               `json:"academic_year"`
	Counts       *cms.EnrollmentCounts `json:"counts"`
	LegacyTotal  *int                  `json:"legacy_total"`
	Metadata     map[string]any        `json:"metadata"`
}

// EnrollmentResponse is an enrollment record plus its derived total.
type EnrollmentResponse struct {
	*cms.EnrollmentRecord
	TotalEnrollment int `json:"total_enrollment"`
}

func enrollmentResponse(record *cms.EnrollmentRecord) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentRecord: record,
		TotalEnrollment:  record.TotalEnrollment(),
	}
}

// CreateEnrollment creates a new enrollment record
func (h *EnrollmentHandler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	schoolID, err := uuid.Parse(req.SchoolID)
	if err != nil {
		http.Error(w, "Invalid school ID", http.StatusBadRequest)
		return
	}

	record, err := h.service.CreateEnrollment(r.Context(), cms.CreateEnrollmentRequest{
		SchoolID:     schoolID,
		AcademicYear: req.AcademicYear,
		Counts:       req.Counts,
		LegacyTotal:  req.LegacyTotal,
		Metadata:     req.Metadata,
	})
	if err != nil {
		slog.Error("Failed to create enrollment record", "school_id", req.SchoolID, "academic_year", req.AcademicYear, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Enrollment record created", "enrollment_id", record.ID.String(), "school_id", req.SchoolID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, enrollmentResponse(record))
}

// GetEnrollment retrieves an enrollment record by ID
func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid enrollment ID", http.StatusBadRequest)
		return
	}

	record, err := h.service.GetEnrollment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, enrollmentResponse(record))
}

// GetEnrollmentBySchoolYear retrieves the record for one school and year.
// The year is matched as a wildcard because academic years contain a slash
// ("2025/2026").
func (h *EnrollmentHandler) GetEnrollmentBySchoolYear(w http.ResponseWriter, r *http.Request) {
	schoolIDStr := chi.URLParam(r, "schoolID")
	schoolID, err := uuid.Parse(schoolIDStr)
	if err != nil {
		http.Error(w, "Invalid school ID", http.StatusBadRequest)
		return
	}
	year := chi.URLParam(r, "*")
	if year == "" {
		http.Error(w, "Missing academic year", http.StatusBadRequest)
		return
	}

	record, err := h.service.GetEnrollmentBySchoolYear(r.Context(), schoolID, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, enrollmentResponse(record))
}

// UpdateEnrollment patches an enrollment record by ID
func (h *EnrollmentHandler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid enrollment ID", http.StatusBadRequest)
		return
	}

	var req UpdateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.service.UpdateEnrollment(r.Context(), id, cms.UpdateEnrollmentRequest{
		AcademicYear: req.AcademicYear,
		Counts:       req.Counts,
		LegacyTotal:  req.LegacyTotal,
		Metadata:     req.Metadata,
	})
	if err != nil {
		slog.Error("Failed to update enrollment record", "enrollment_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Enrollment record updated", "enrollment_id", idStr)
	render.JSON(w, r, enrollmentResponse(record))
}

// DeleteEnrollment deletes an enrollment record by ID
func (h *EnrollmentHandler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid enrollment ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteEnrollment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Enrollment record deleted", "enrollment_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListEnrollments lists enrollment records with optional filters.
// Query parameters: school_id, academic_year, page, limit.
func (h *EnrollmentHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	req := cms.ListEnrollmentsRequest{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	if schoolIDStr := r.URL.Query().Get("school_id"); schoolIDStr != "" {
		schoolID, err := uuid.Parse(schoolIDStr)
		if err != nil {
			http.Error(w, "Invalid school ID", http.StatusBadRequest)
			return
		}
		req.SchoolID = &schoolID
	}
	if year := r.URL.Query().Get("academic_year"); year != "" {
		req.AcademicYear = &year
	}

	page, err := h.service.ListEnrollments(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list enrollment records", "error", err)
		writeError(w, r, err)
		return
	}

	items := make([]EnrollmentResponse, 0, len(page.Items))
	for _, record := range page.Items {
		items = append(items, enrollmentResponse(record))
	}

	render.JSON(w, r, cms.Page[EnrollmentResponse]{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
	})
}
