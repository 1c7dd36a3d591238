package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/payments"
	"github.com/shulebase/shulebase/internal/repository"
)

// Store interfaces consumed by the service layer. The gorm repositories
// satisfy them; tests substitute in-memory fakes.

type SchoolStore interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.School, error)
	GetBySlug(ctx context.Context, slug string) (*models.School, error)
	List(ctx context.Context, page repository.Page) ([]models.School, error)
	Update(ctx context.Context, school *models.School) error
	Count(ctx context.Context) (int64, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, scope repository.Scope, profile *models.Profile) error
	Update(ctx context.Context, scope repository.Scope, profile *models.Profile) error
	ListBySchool(ctx context.Context, scope repository.Scope, page repository.Page) ([]models.Profile, error)
}

type StudentStore interface {
	Create(ctx context.Context, scope repository.Scope, student *models.Student) error
	GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Student, error)
	List(ctx context.Context, scope repository.Scope, filter repository.StudentFilter, page repository.Page) ([]models.Student, error)
	Update(ctx context.Context, scope repository.Scope, student *models.Student) error
	Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error
	Count(ctx context.Context, scope repository.Scope) (int64, error)
}

type StaffStore interface {
	Create(ctx context.Context, scope repository.Scope, member *models.StaffMember) error
	GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.StaffMember, error)
	List(ctx context.Context, scope repository.Scope, activeOnly bool, page repository.Page) ([]models.StaffMember, error)
	Update(ctx context.Context, scope repository.Scope, member *models.StaffMember) error
	Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error
	Count(ctx context.Context, scope repository.Scope) (int64, error)
}

type ClassStore interface {
	Create(ctx context.Context, scope repository.Scope, class *models.Class) error
	GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Class, error)
	List(ctx context.Context, scope repository.Scope, academicYear string, page repository.Page) ([]models.Class, error)
	Update(ctx context.Context, scope repository.Scope, class *models.Class) error
	Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error
	Count(ctx context.Context, scope repository.Scope) (int64, error)
	Enroll(ctx context.Context, scope repository.Scope, enrollment *models.Enrollment) error
	ListEnrollments(ctx context.Context, scope repository.Scope, classID uuid.UUID) ([]models.Enrollment, error)
}

type AttendanceStore interface {
	Record(ctx context.Context, scope repository.Scope, record *models.AttendanceRecord) error
	ListByClassDate(ctx context.Context, scope repository.Scope, classID uuid.UUID, date time.Time) ([]models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, scope repository.Scope, studentID uuid.UUID, from, to time.Time, page repository.Page) ([]models.AttendanceRecord, error)
	CountForDate(ctx context.Context, scope repository.Scope, date time.Time) (int64, error)
}

type FinanceStore interface {
	CreateFeeStructure(ctx context.Context, scope repository.Scope, fee *models.FeeStructure) error
	GetFeeStructure(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.FeeStructure, error)
	ListFeeStructures(ctx context.Context, scope repository.Scope, term string, page repository.Page) ([]models.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, scope repository.Scope, fee *models.FeeStructure) error
	DeleteFeeStructure(ctx context.Context, scope repository.Scope, id uuid.UUID) error
	CreateInvoice(ctx context.Context, scope repository.Scope, invoice *models.Invoice) error
	GetInvoice(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, scope repository.Scope, filter repository.InvoiceFilter, page repository.Page) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, scope repository.Scope, invoice *models.Invoice) error
	SumOutstanding(ctx context.Context, scope repository.Scope) (int64, error)
	CreatePayment(ctx context.Context, scope repository.Scope, payment *models.PaymentRecord) error
	GetPaymentByIntentRef(ctx context.Context, intentRef string) (*models.PaymentRecord, error)
	UpdatePayment(ctx context.Context, scope repository.Scope, payment *models.PaymentRecord) error
}

type PayrollStore interface {
	Create(ctx context.Context, scope repository.Scope, entry *models.PayrollEntry) error
	GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.PayrollEntry, error)
	ListByPeriod(ctx context.Context, scope repository.Scope, period string, page repository.Page) ([]models.PayrollEntry, error)
	Update(ctx context.Context, scope repository.Scope, entry *models.PayrollEntry) error
}

type EngagementStore interface {
	CreateAnnouncement(ctx context.Context, scope repository.Scope, a *models.Announcement) error
	ListAnnouncements(ctx context.Context, scope repository.Scope, audience models.Role, page repository.Page) ([]models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, scope repository.Scope, id uuid.UUID) error
	CreateEvent(ctx context.Context, scope repository.Scope, e *models.Event) error
	ListEvents(ctx context.Context, scope repository.Scope, from time.Time, page repository.Page) ([]models.Event, error)
	DeleteEvent(ctx context.Context, scope repository.Scope, id uuid.UUID) error
}

type InventoryStore interface {
	Create(ctx context.Context, scope repository.Scope, item *models.InventoryItem) error
	GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, scope repository.Scope, category string, page repository.Page) ([]models.InventoryItem, error)
	Update(ctx context.Context, scope repository.Scope, item *models.InventoryItem) error
	Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error
}

type AuditStore interface {
	Create(ctx context.Context, scope repository.Scope, entry *models.AuditLog) error
	List(ctx context.Context, scope repository.Scope, page repository.Page) ([]models.AuditLog, error)
	ListByResource(ctx context.Context, scope repository.Scope, resourceType, resourceID string) ([]models.AuditLog, error)
}

// PaymentsGateway is the processor client surface the finance service needs.
type PaymentsGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, invoiceID uuid.UUID) (*payments.Intent, error)
}
