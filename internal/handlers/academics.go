package handlers

import (
	"net/http"

	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/internal/services"
)

// AcademicsHandler serves students, staff, classes, and enrollment.
type AcademicsHandler struct {
	academicsService *services.AcademicsService
}

func NewAcademicsHandler(academicsService *services.AcademicsService) *AcademicsHandler {
	return &AcademicsHandler{
		academicsService: academicsService,
	}
}

// CreateStudent creates a student
func (h *AcademicsHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.StudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	student, err := h.academicsService.CreateStudent(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, student)
}

// GetStudent retrieves a student
func (h *AcademicsHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	student, err := h.academicsService.GetStudent(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, student)
}

// ListStudents retrieves students matching the query filter
func (h *AcademicsHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	classID, err := queryUUID(r, "class_id")
	if err != nil {
		writeError(w, err)
		return
	}
	filter := repository.StudentFilter{
		ClassID: classID,
		Status:  models.StudentStatus(r.URL.Query().Get("status")),
		Search:  r.URL.Query().Get("q"),
	}

	students, err := h.academicsService.ListStudents(r.Context(), scope, filter, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, students)
}

// UpdateStudent updates a student
func (h *AcademicsHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.StudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	student, err := h.academicsService.UpdateStudent(r.Context(), scope, identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, student)
}

// DeleteStudent soft deletes a student
func (h *AcademicsHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.academicsService.DeleteStudent(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateStaff creates a staff member
func (h *AcademicsHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.StaffRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.academicsService.CreateStaff(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// GetStaff retrieves a staff member
func (h *AcademicsHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := h.academicsService.GetStaff(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// ListStaff retrieves staff members
func (h *AcademicsHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	members, err := h.academicsService.ListStaff(r.Context(), scope, activeOnly, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// UpdateStaff updates a staff member
func (h *AcademicsHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.StaffRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.academicsService.UpdateStaff(r.Context(), scope, identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// DeleteStaff soft deletes a staff member
func (h *AcademicsHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.academicsService.DeleteStaff(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateClass creates a class
func (h *AcademicsHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.ClassRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	class, err := h.academicsService.CreateClass(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, class)
}

// GetClass retrieves a class
func (h *AcademicsHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	class, err := h.academicsService.GetClass(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, class)
}

// ListClasses retrieves classes
func (h *AcademicsHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	classes, err := h.academicsService.ListClasses(r.Context(), scope, r.URL.Query().Get("academic_year"), pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, classes)
}

// UpdateClass updates a class
func (h *AcademicsHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.ClassRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	class, err := h.academicsService.UpdateClass(r.Context(), scope, identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, class)
}

// DeleteClass deletes a class
func (h *AcademicsHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.academicsService.DeleteClass(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnrollStudent links a student to a class
func (h *AcademicsHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.EnrollmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	enrollment, err := h.academicsService.EnrollStudent(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, enrollment)
}

// ListEnrollments retrieves a class's enrollments
func (h *AcademicsHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	classID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	enrollments, err := h.academicsService.ListEnrollments(r.Context(), scope, classID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, enrollments)
}
