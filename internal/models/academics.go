package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentStatus is the lifecycle state of a student record.
type StudentStatus string

const (
	StudentActive      StudentStatus = "active"
	StudentSuspended   StudentStatus = "suspended"
	StudentGraduated   StudentStatus = "graduated"
	StudentTransferred StudentStatus = "transferred"
)

// Student is an enrolled learner belonging to one school.
type Student struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"school_id"`
	AdmissionNumber string         `gorm:"type:varchar(30);not null;index" json:"admission_number"`
	FirstName       string         `gorm:"type:varchar(80);not null" json:"first_name"`
	LastName        string         `gorm:"type:varchar(80);not null" json:"last_name"`
	DateOfBirth     *time.Time     `json:"date_of_birth,omitempty"`
	ClassID         *uuid.UUID     `gorm:"type:uuid;index" json:"class_id,omitempty"`
	GuardianName    string         `gorm:"type:varchar(160)" json:"guardian_name,omitempty"`
	GuardianPhone   string         `gorm:"type:varchar(32)" json:"guardian_phone,omitempty"`
	Status          StudentStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StaffMember is an employed teacher or administrator of one school.
type StaffMember struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"school_id"`
	StaffNumber string         `gorm:"type:varchar(30);not null;index" json:"staff_number"`
	FirstName   string         `gorm:"type:varchar(80);not null" json:"first_name"`
	LastName    string         `gorm:"type:varchar(80);not null" json:"last_name"`
	Email       string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone       string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Title       string         `gorm:"type:varchar(80)" json:"title,omitempty"`
	SalaryGrade string         `gorm:"type:varchar(20)" json:"salary_grade,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StaffMember) TableName() string {
	return "staff_members"
}

func (m *StaffMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Class is a teaching group for one academic year.
type Class struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Name         string     `gorm:"type:varchar(80);not null" json:"name"`
	Level        string     `gorm:"type:varchar(40)" json:"level,omitempty"`
	AcademicYear string     `gorm:"type:varchar(20);not null" json:"academic_year"`
	HomeroomID   *uuid.UUID `gorm:"type:uuid;index" json:"homeroom_id,omitempty"` // staff member
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Class) TableName() string {
	return "classes"
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Enrollment links a student to a class. One row per student per class.
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID   uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_class" json:"student_id"`
	ClassID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_class" json:"class_id"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
