package handlers

import (
	"net/http"

	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/services"
)

// SchoolHandler backs the super-admin console. The routes it serves sit
// behind the manage_schools capability, which only super_admin holds.
type SchoolHandler struct {
	schoolService *services.SchoolService
}

func NewSchoolHandler(schoolService *services.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
	}
}

// CreateSchool provisions a new school
func (h *SchoolHandler) CreateSchool(w http.ResponseWriter, r *http.Request) {
	identity, _, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.SchoolRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	school, err := h.schoolService.CreateSchool(r.Context(), identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, school)
}

// GetSchool retrieves a school
func (h *SchoolHandler) GetSchool(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	school, err := h.schoolService.GetSchool(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, school)
}

// ListSchools retrieves all schools
func (h *SchoolHandler) ListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schoolService.ListSchools(r.Context(), pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schools)
}

// UpdateSchool updates a school
func (h *SchoolHandler) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	identity, _, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.SchoolRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	school, err := h.schoolService.UpdateSchool(r.Context(), identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, school)
}

// DeactivateSchool disables a school without deleting it
func (h *SchoolHandler) DeactivateSchool(w http.ResponseWriter, r *http.Request) {
	identity, _, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	school, err := h.schoolService.DeactivateSchool(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, school)
}

// CreateProfile registers a profile for a provider identity
func (h *SchoolHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.ProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.schoolService.CreateProfile(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// ListProfiles retrieves the active school's profiles
func (h *SchoolHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profiles, err := h.schoolService.ListProfiles(r.Context(), scope, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}
