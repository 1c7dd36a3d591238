package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus is the per-day marking for one student.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// ValidAttendanceStatus reports whether s is a known marking.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecord is one student's marking for one class on one day.
// Re-recording the same student/class/day replaces the previous marking
// (last write wins).
type AttendanceRecord struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"school_id"`
	ClassID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day" json:"class_id"`
	StudentID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day" json:"student_id"`
	Date       time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_day" json:"date"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	RecordedBy uuid.UUID        `gorm:"type:uuid;not null" json:"recorded_by"` // profile user ID
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
