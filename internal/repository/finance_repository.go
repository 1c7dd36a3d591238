package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// FinanceRepository handles fee structures, invoices, and payment records
// under a scope.
type FinanceRepository struct{}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository() *FinanceRepository {
	return &FinanceRepository{}
}

// CreateFeeStructure creates a fee structure tagged with the scope's school
func (r *FinanceRepository) CreateFeeStructure(ctx context.Context, scope Scope, fee *models.FeeStructure) error {
	schoolID, err := scope.stamp(fee.SchoolID)
	if err != nil {
		return err
	}
	fee.SchoolID = schoolID
	if err := scope.db(ctx).Create(fee).Error; err != nil {
		return wrapErr("create fee structure", err)
	}
	return nil
}

// GetFeeStructure retrieves a fee structure within scope
func (r *FinanceRepository) GetFeeStructure(ctx context.Context, scope Scope, id uuid.UUID) (*models.FeeStructure, error) {
	var fee models.FeeStructure
	if err := scope.query(ctx).Where("id = ?", id).First(&fee).Error; err != nil {
		return nil, wrapErr("get fee structure", err)
	}
	return &fee, nil
}

// ListFeeStructures retrieves fee structures within scope; empty term means
// all terms.
func (r *FinanceRepository) ListFeeStructures(ctx context.Context, scope Scope, term string, page Page) ([]models.FeeStructure, error) {
	query := scope.query(ctx).Model(&models.FeeStructure{})
	if term != "" {
		query = query.Where("term = ?", term)
	}

	var fees []models.FeeStructure
	if err := page.apply(query.Order("term ASC, name ASC")).Find(&fees).Error; err != nil {
		return nil, wrapErr("list fee structures", err)
	}
	return fees, nil
}

// UpdateFeeStructure saves changes to a fee structure within scope
func (r *FinanceRepository) UpdateFeeStructure(ctx context.Context, scope Scope, fee *models.FeeStructure) error {
	if !scope.Unrestricted && fee.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(fee).Error; err != nil {
		return wrapErr("update fee structure", err)
	}
	return nil
}

// DeleteFeeStructure hard deletes a fee structure within scope
func (r *FinanceRepository) DeleteFeeStructure(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.FeeStructure{})
	if result.Error != nil {
		return wrapErr("delete fee structure", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateInvoice creates an invoice tagged with the scope's school
func (r *FinanceRepository) CreateInvoice(ctx context.Context, scope Scope, invoice *models.Invoice) error {
	schoolID, err := scope.stamp(invoice.SchoolID)
	if err != nil {
		return err
	}
	invoice.SchoolID = schoolID
	if err := scope.db(ctx).Create(invoice).Error; err != nil {
		return wrapErr("create invoice", err)
	}
	return nil
}

// GetInvoice retrieves an invoice within scope
func (r *FinanceRepository) GetInvoice(ctx context.Context, scope Scope, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := scope.query(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, wrapErr("get invoice", err)
	}
	return &invoice, nil
}

// InvoiceFilter narrows an invoice list query.
type InvoiceFilter struct {
	StudentID *uuid.UUID
	Status    models.InvoiceStatus
}

// ListInvoices retrieves invoices within scope
func (r *FinanceRepository) ListInvoices(ctx context.Context, scope Scope, filter InvoiceFilter, page Page) ([]models.Invoice, error) {
	query := scope.query(ctx).Model(&models.Invoice{})
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var invoices []models.Invoice
	if err := page.apply(query.Order("due_date ASC")).Find(&invoices).Error; err != nil {
		return nil, wrapErr("list invoices", err)
	}
	return invoices, nil
}

// UpdateInvoice saves changes to an invoice within scope
func (r *FinanceRepository) UpdateInvoice(ctx context.Context, scope Scope, invoice *models.Invoice) error {
	if !scope.Unrestricted && invoice.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(invoice).Error; err != nil {
		return wrapErr("update invoice", err)
	}
	return nil
}

// SumOutstanding returns the unpaid balance across issued and part-paid
// invoices within scope.
func (r *FinanceRepository) SumOutstanding(ctx context.Context, scope Scope) (int64, error) {
	var total int64
	if err := scope.query(ctx).Model(&models.Invoice{}).
		Where("status IN ?", []models.InvoiceStatus{models.InvoiceIssued, models.InvoicePartpaid}).
		Select("COALESCE(SUM(amount_cents - paid_cents), 0)").
		Scan(&total).Error; err != nil {
		return 0, wrapErr("sum outstanding", err)
	}
	return total, nil
}

// CreatePayment creates a payment record tagged with the scope's school
func (r *FinanceRepository) CreatePayment(ctx context.Context, scope Scope, payment *models.PaymentRecord) error {
	schoolID, err := scope.stamp(payment.SchoolID)
	if err != nil {
		return err
	}
	payment.SchoolID = schoolID
	if err := scope.db(ctx).Create(payment).Error; err != nil {
		return wrapErr("create payment record", err)
	}
	return nil
}

// GetPaymentByIntentRef looks up a payment record by the processor's intent
// reference. Callbacks arrive without a session, so this lookup is unscoped;
// the record itself carries the school it settles into.
func (r *FinanceRepository) GetPaymentByIntentRef(ctx context.Context, intentRef string) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	if err := ScopeAll().query(ctx).Where("intent_ref = ?", intentRef).First(&payment).Error; err != nil {
		return nil, wrapErr("get payment record", err)
	}
	return &payment, nil
}

// UpdatePayment saves changes to a payment record
func (r *FinanceRepository) UpdatePayment(ctx context.Context, scope Scope, payment *models.PaymentRecord) error {
	if !scope.Unrestricted && payment.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(payment).Error; err != nil {
		return wrapErr("update payment record", err)
	}
	return nil
}
