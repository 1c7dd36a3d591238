package models

import (
	"time"

	"github.com/google/uuid"
)

// Request payloads for the API. Validation tags are enforced at the handler
// boundary; anything that passes is safe to hand to a service.

// SchoolRequest creates or updates a school (super-admin console only).
type SchoolRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Slug         string `json:"slug" validate:"required,max=63,lowercase"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=trial active past_due canceled"`
}

// ProfileRequest creates or updates a user profile.
type ProfileRequest struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	SchoolID  *uuid.UUID `json:"school_id"`
	FirstName string     `json:"first_name" validate:"required,max=80"`
	LastName  string     `json:"last_name" validate:"required,max=80"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone" validate:"omitempty,max=32"`
	Role      string     `json:"role" validate:"required"`
}

// StudentRequest creates or updates a student.
type StudentRequest struct {
	AdmissionNumber string     `json:"admission_number" validate:"required,max=30"`
	FirstName       string     `json:"first_name" validate:"required,max=80"`
	LastName        string     `json:"last_name" validate:"required,max=80"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	ClassID         *uuid.UUID `json:"class_id"`
	GuardianName    string     `json:"guardian_name" validate:"omitempty,max=160"`
	GuardianPhone   string     `json:"guardian_phone" validate:"omitempty,max=32"`
	Status          string     `json:"status" validate:"omitempty,oneof=active suspended graduated transferred"`
}

// StaffRequest creates or updates a staff member.
type StaffRequest struct {
	StaffNumber string `json:"staff_number" validate:"required,max=30"`
	FirstName   string `json:"first_name" validate:"required,max=80"`
	LastName    string `json:"last_name" validate:"required,max=80"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Title       string `json:"title" validate:"omitempty,max=80"`
	SalaryGrade string `json:"salary_grade" validate:"omitempty,max=20"`
}

// ClassRequest creates or updates a class.
type ClassRequest struct {
	Name         string     `json:"name" validate:"required,max=80"`
	Level        string     `json:"level" validate:"omitempty,max=40"`
	AcademicYear string     `json:"academic_year" validate:"required,max=20"`
	HomeroomID   *uuid.UUID `json:"homeroom_id"`
}

// EnrollmentRequest links a student to a class.
type EnrollmentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
}

// AttendanceEntry is one student's marking inside a sheet.
type AttendanceEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
}

// AttendanceSheetRequest records a class's attendance for one day.
type AttendanceSheetRequest struct {
	ClassID uuid.UUID         `json:"class_id" validate:"required"`
	Date    time.Time         `json:"date" validate:"required"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// FeeStructureRequest creates or updates a fee structure.
type FeeStructureRequest struct {
	ClassID     uuid.UUID `json:"class_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=120"`
	Term        string    `json:"term" validate:"required,max=40"`
	AmountCents int64     `json:"amount_cents" validate:"required,gt=0"`
	Currency    string    `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// InvoiceRequest issues an invoice against a fee structure.
type InvoiceRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	FeeStructureID uuid.UUID `json:"fee_structure_id" validate:"required"`
	DueDate        time.Time `json:"due_date" validate:"required"`
}

// PaymentCallbackRequest is the processor's report on a settled intent.
type PaymentCallbackRequest struct {
	IntentRef   string `json:"intent_ref" validate:"required,max=64"`
	Status      string `json:"status" validate:"required,oneof=succeeded failed"`
	FailureNote string `json:"failure_note" validate:"omitempty,max=500"`
}

// PayrollRequest creates a payroll entry.
type PayrollRequest struct {
	StaffID    uuid.UUID `json:"staff_id" validate:"required"`
	Period     string    `json:"period" validate:"required,len=7"` // YYYY-MM
	GrossCents int64     `json:"gross_cents" validate:"required,gt=0"`
	NetCents   int64     `json:"net_cents" validate:"required,gt=0,ltefield=GrossCents"`
}

// AnnouncementRequest posts an announcement.
type AnnouncementRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Body        string     `json:"body" validate:"required"`
	Audience    string     `json:"audience" validate:"omitempty,oneof=super_admin school_admin teacher student parent"`
	PublishedAt *time.Time `json:"published_at"`
}

// EventRequest creates a calendar event.
type EventRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Location string    `json:"location" validate:"omitempty,max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtefield=StartsAt"`
}

// InventoryItemRequest creates or updates an inventory item.
type InventoryItemRequest struct {
	Name          string `json:"name" validate:"required,max=160"`
	Category      string `json:"category" validate:"omitempty,max=80"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	UnitCostCents int64  `json:"unit_cost_cents" validate:"gte=0"`
}
