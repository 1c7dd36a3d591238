package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/models"
	"gorm.io/gorm/clause"
)

// AttendanceRepository handles attendance database operations under a scope.
type AttendanceRepository struct{}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{}
}

// Record upserts one student's marking for a class and day. Re-recording the
// same student/class/day replaces the previous marking (last write wins).
func (r *AttendanceRepository) Record(ctx context.Context, scope Scope, record *models.AttendanceRecord) error {
	schoolID, err := scope.stamp(record.SchoolID)
	if err != nil {
		return err
	}
	record.SchoolID = schoolID
	record.Date = record.Date.Truncate(24 * time.Hour)

	if err := scope.db(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "class_id"}, {Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "recorded_by", "updated_at",
		}),
	}).Create(record).Error; err != nil {
		return wrapErr("record attendance", err)
	}
	return nil
}

// ListByClassDate retrieves a class's markings for one day within scope
func (r *AttendanceRepository) ListByClassDate(ctx context.Context, scope Scope, classID uuid.UUID, date time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := scope.query(ctx).
		Where("class_id = ? AND date = ?", classID, date.Truncate(24*time.Hour)).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, wrapErr("list attendance", err)
	}
	return records, nil
}

// ListByStudent retrieves a student's markings within scope for a date range
func (r *AttendanceRepository) ListByStudent(ctx context.Context, scope Scope, studentID uuid.UUID, from, to time.Time, page Page) ([]models.AttendanceRecord, error) {
	query := scope.query(ctx).Where("student_id = ?", studentID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from.Truncate(24*time.Hour))
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to.Truncate(24*time.Hour))
	}

	var records []models.AttendanceRecord
	if err := page.apply(query.Order("date DESC")).Find(&records).Error; err != nil {
		return nil, wrapErr("list student attendance", err)
	}
	return records, nil
}

// CountForDate returns how many markings exist for a day within scope
func (r *AttendanceRepository) CountForDate(ctx context.Context, scope Scope, date time.Time) (int64, error) {
	var count int64
	if err := scope.query(ctx).Model(&models.AttendanceRecord{}).
		Where("date = ?", date.Truncate(24*time.Hour)).
		Count(&count).Error; err != nil {
		return 0, wrapErr("count attendance", err)
	}
	return count, nil
}
