package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure defines a charge applied to a class for one term. Amounts are
// integer minor units (cents) to avoid float drift.
type FeeStructure struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID    uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	ClassID     uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Term        string    `gorm:"type:varchar(40);not null" json:"term"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FeeStructure) TableName() string {
	return "fee_structures"
}

func (f *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// InvoiceStatus is the collection state of an invoice.
type InvoiceStatus string

const (
	InvoiceIssued   InvoiceStatus = "issued"
	InvoicePartpaid InvoiceStatus = "part_paid"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceVoid     InvoiceStatus = "void"
)

// Invoice bills one student for one fee structure.
type Invoice struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"school_id"`
	StudentID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	FeeStructureID uuid.UUID     `gorm:"type:uuid;not null;index" json:"fee_structure_id"`
	AmountCents    int64         `gorm:"not null" json:"amount_cents"`
	PaidCents      int64         `gorm:"not null;default:0" json:"paid_cents"`
	Currency       string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	DueDate        time.Time     `gorm:"type:date;not null" json:"due_date"`
	Status         InvoiceStatus `gorm:"type:varchar(12);not null;default:'issued'" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PaymentStatus mirrors the processor's view of a charge. The charge
// lifecycle itself is owned by the processor; we only record outcomes.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentRecord tracks one payment attempt against an invoice, keyed by the
// processor's intent reference.
type PaymentRecord struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"school_id"`
	InvoiceID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	IntentRef   string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"intent_ref"`
	AmountCents int64         `gorm:"not null" json:"amount_cents"`
	Status      PaymentStatus `gorm:"type:varchar(12);not null;default:'pending'" json:"status"`
	FailureNote string        `gorm:"type:text" json:"failure_note,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PayrollStatus is the disbursement state of a payroll entry.
type PayrollStatus string

const (
	PayrollDraft    PayrollStatus = "draft"
	PayrollApproved PayrollStatus = "approved"
	PayrollPaid     PayrollStatus = "paid"
)

// PayrollEntry is one staff member's pay for one period.
type PayrollEntry struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"school_id"`
	StaffID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"staff_id"`
	Period     string        `gorm:"type:varchar(7);not null;index" json:"period"` // YYYY-MM
	GrossCents int64         `gorm:"not null" json:"gross_cents"`
	NetCents   int64         `gorm:"not null" json:"net_cents"`
	Status     PayrollStatus `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (PayrollEntry) TableName() string {
	return "payroll_entries"
}

func (p *PayrollEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
