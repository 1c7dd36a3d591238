package handlers

import (
	"net/http"
	"time"

	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/services"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// RecordSheet upserts a class's attendance for one day
func (h *AttendanceHandler) RecordSheet(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.AttendanceSheetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	records, err := h.attendanceService.RecordSheet(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// ClassDay retrieves a class's markings for one day
func (h *AttendanceHandler) ClassDay(w http.ResponseWriter, r *http.Request) {
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

	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	records, err := h.attendanceService.ClassDay(r.Context(), scope, classID, date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// StudentRange retrieves a student's markings over a date range
func (h *AttendanceHandler) StudentRange(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	studentID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, err)
		return
	}
	if from.IsZero() || to.IsZero() {
		writeError(w, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "from",
			Message: "from and to are required",
		}))
		return
	}

	records, err := h.attendanceService.StudentRange(r.Context(), scope, studentID, from, to, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
