package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// AttendanceService records and reads daily attendance.
type AttendanceService struct {
	attendance AttendanceStore
	classes    ClassStore
	students   StudentStore
	auditor
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance AttendanceStore, classes ClassStore, students StudentStore, audits AuditStore) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		classes:    classes,
		students:   students,
		auditor:    auditor{audits: audits},
	}
}

// RecordSheet upserts a class's markings for one day. Re-submitting a sheet
// replaces the previous markings (last write wins). The class and every
// student named by the sheet must exist within scope before anything is
// written.
func (s *AttendanceService) RecordSheet(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.AttendanceSheetRequest) ([]models.AttendanceRecord, error) {
	if _, err := s.classes.GetByID(ctx, scope, req.ClassID); err != nil {
		return nil, err
	}
	for _, entry := range req.Entries {
		if _, err := s.students.GetByID(ctx, scope, entry.StudentID); err != nil {
			return nil, err
		}
	}

	records := make([]models.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		record := models.AttendanceRecord{
			ClassID:    req.ClassID,
			StudentID:  entry.StudentID,
			Date:       req.Date,
			Status:     models.AttendanceStatus(entry.Status),
			RecordedBy: actor.UserID,
		}
		if err := s.attendance.Record(ctx, scope, &record); err != nil {
			s.record(ctx, scope, actor, "attendance.record", "class", req.ClassID.String(), err)
			return nil, err
		}
		records = append(records, record)
	}

	s.record(ctx, scope, actor, "attendance.record", "class", req.ClassID.String(), nil)
	return records, nil
}

// ClassDay retrieves a class's markings for one day
func (s *AttendanceService) ClassDay(ctx context.Context, scope repository.Scope, classID uuid.UUID, date time.Time) ([]models.AttendanceRecord, error) {
	return s.attendance.ListByClassDate(ctx, scope, classID, date)
}

// StudentRange retrieves a student's markings over a date range
func (s *AttendanceService) StudentRange(ctx context.Context, scope repository.Scope, studentID uuid.UUID, from, to time.Time, page repository.Page) ([]models.AttendanceRecord, error) {
	return s.attendance.ListByStudent(ctx, scope, studentID, from, to, page)
}
