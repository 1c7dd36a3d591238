package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// FinanceService handles fee structures, invoices, payments, and payroll.
type FinanceService struct {
	fin      FinanceStore
	payroll  PayrollStore
	students StudentStore
	staff    StaffStore
	classes  ClassStore
	gateway  PaymentsGateway
	auditor
}

// NewFinanceService creates a new finance service. The payments gateway may
// be nil when the processor integration is disabled.
func NewFinanceService(fin FinanceStore, payroll PayrollStore, students StudentStore, staff StaffStore, classes ClassStore, gateway PaymentsGateway, audits AuditStore) *FinanceService {
	return &FinanceService{
		fin:      fin,
		payroll:  payroll,
		students: students,
		staff:    staff,
		classes:  classes,
		gateway:  gateway,
		auditor:  auditor{audits: audits},
	}
}

// CreateFeeStructure creates a fee structure for a class in the active school
func (s *FinanceService) CreateFeeStructure(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.FeeStructureRequest) (*models.FeeStructure, error) {
	if _, err := s.classes.GetByID(ctx, scope, req.ClassID); err != nil {
		return nil, err
	}

	fee := &models.FeeStructure{
		ClassID:     req.ClassID,
		Name:        req.Name,
		Term:        req.Term,
		AmountCents: req.AmountCents,
		Currency:    "USD",
	}
	if req.Currency != "" {
		fee.Currency = req.Currency
	}

	err := s.fin.CreateFeeStructure(ctx, scope, fee)
	s.record(ctx, scope, actor, "fee.create", "fee_structure", fee.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// ListFeeStructures retrieves fee structures for a term
func (s *FinanceService) ListFeeStructures(ctx context.Context, scope repository.Scope, term string, page repository.Page) ([]models.FeeStructure, error) {
	return s.fin.ListFeeStructures(ctx, scope, term, page)
}

// UpdateFeeStructure applies a request to an existing fee structure
func (s *FinanceService) UpdateFeeStructure(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID, req *models.FeeStructureRequest) (*models.FeeStructure, error) {
	fee, err := s.fin.GetFeeStructure(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	fee.ClassID = req.ClassID
	fee.Name = req.Name
	fee.Term = req.Term
	fee.AmountCents = req.AmountCents
	if req.Currency != "" {
		fee.Currency = req.Currency
	}

	err = s.fin.UpdateFeeStructure(ctx, scope, fee)
	s.record(ctx, scope, actor, "fee.update", "fee_structure", id.String(), err)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// DeleteFeeStructure deletes a fee structure
func (s *FinanceService) DeleteFeeStructure(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.fin.DeleteFeeStructure(ctx, scope, id)
	s.record(ctx, scope, actor, "fee.delete", "fee_structure", id.String(), err)
	return err
}

// IssueInvoice bills a student for a fee structure. Amount and currency are
// copied from the fee at issue time so later fee edits do not reprice open
// invoices.
func (s *FinanceService) IssueInvoice(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.InvoiceRequest) (*models.Invoice, error) {
	if _, err := s.students.GetByID(ctx, scope, req.StudentID); err != nil {
		return nil, err
	}
	fee, err := s.fin.GetFeeStructure(ctx, scope, req.FeeStructureID)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		StudentID:      req.StudentID,
		FeeStructureID: fee.ID,
		AmountCents:    fee.AmountCents,
		Currency:       fee.Currency,
		DueDate:        req.DueDate,
		Status:         models.InvoiceIssued,
	}

	err = s.fin.CreateInvoice(ctx, scope, invoice)
	s.record(ctx, scope, actor, "invoice.issue", "invoice", invoice.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice
func (s *FinanceService) GetInvoice(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Invoice, error) {
	return s.fin.GetInvoice(ctx, scope, id)
}

// ListInvoices retrieves invoices matching the filter
func (s *FinanceService) ListInvoices(ctx context.Context, scope repository.Scope, filter repository.InvoiceFilter, page repository.Page) ([]models.Invoice, error) {
	return s.fin.ListInvoices(ctx, scope, filter, page)
}

// PaymentIntentResult hands the processor's client secret to the caller's
// tokenization widget. The secret is never persisted.
type PaymentIntentResult struct {
	IntentRef    string `json:"intent_ref"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// CreatePaymentIntent opens a charge for an invoice's outstanding balance.
func (s *FinanceService) CreatePaymentIntent(ctx context.Context, scope repository.Scope, actor *auth.Identity, invoiceID uuid.UUID) (*PaymentIntentResult, error) {
	if s.gateway == nil {
		return nil, apperrors.Backend("create payment intent", fmt.Errorf("payments processor is not configured"))
	}

	invoice, err := s.fin.GetInvoice(ctx, scope, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceIssued && invoice.Status != models.InvoicePartpaid {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "invoice",
			Message: "not payable in status " + string(invoice.Status),
		})
	}

	outstanding := invoice.AmountCents - invoice.PaidCents
	intent, err := s.gateway.CreateIntent(ctx, outstanding, invoice.Currency, invoice.ID)
	if err != nil {
		s.record(ctx, scope, actor, "payment.intent", "invoice", invoiceID.String(), err)
		return nil, apperrors.Backend("create payment intent", err)
	}

	payment := &models.PaymentRecord{
		InvoiceID:   invoice.ID,
		IntentRef:   intent.ID,
		AmountCents: outstanding,
		Status:      models.PaymentPending,
	}
	if err := s.fin.CreatePayment(ctx, scope, payment); err != nil {
		return nil, err
	}

	s.record(ctx, scope, actor, "payment.intent", "invoice", invoiceID.String(), nil)
	return &PaymentIntentResult{
		IntentRef:    intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  outstanding,
		Currency:     invoice.Currency,
	}, nil
}

// HandleCallback applies the processor's verdict on an intent. Callbacks
// carry no user session; the payment record itself names the school the
// money settles into.
func (s *FinanceService) HandleCallback(ctx context.Context, req *models.PaymentCallbackRequest) error {
	payment, err := s.fin.GetPaymentByIntentRef(ctx, req.IntentRef)
	if err != nil {
		return err
	}
	scope := repository.ScopeSchool(payment.SchoolID)

	if payment.Status != models.PaymentPending {
		// Processor retries are idempotent no-ops.
		return nil
	}

	switch req.Status {
	case "succeeded":
		payment.Status = models.PaymentSucceeded
	default:
		payment.Status = models.PaymentFailed
		payment.FailureNote = req.FailureNote
	}

	if err := s.fin.UpdatePayment(ctx, scope, payment); err != nil {
		return err
	}

	if payment.Status == models.PaymentSucceeded {
		invoice, err := s.fin.GetInvoice(ctx, scope, payment.InvoiceID)
		if err != nil {
			return err
		}
		invoice.PaidCents += payment.AmountCents
		if invoice.PaidCents >= invoice.AmountCents {
			invoice.Status = models.InvoicePaid
		} else {
			invoice.Status = models.InvoicePartpaid
		}
		if err := s.fin.UpdateInvoice(ctx, scope, invoice); err != nil {
			return err
		}
	}

	s.record(ctx, scope, nil, "payment.settle", "payment", payment.ID.String(), nil)
	return nil
}

// CreatePayrollEntry creates a payroll entry for a staff member
func (s *FinanceService) CreatePayrollEntry(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.PayrollRequest) (*models.PayrollEntry, error) {
	if _, err := s.staff.GetByID(ctx, scope, req.StaffID); err != nil {
		return nil, err
	}

	entry := &models.PayrollEntry{
		StaffID:    req.StaffID,
		Period:     req.Period,
		GrossCents: req.GrossCents,
		NetCents:   req.NetCents,
		Status:     models.PayrollDraft,
	}

	err := s.payroll.Create(ctx, scope, entry)
	s.record(ctx, scope, actor, "payroll.create", "payroll_entry", entry.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListPayroll retrieves payroll entries for a period
func (s *FinanceService) ListPayroll(ctx context.Context, scope repository.Scope, period string, page repository.Page) ([]models.PayrollEntry, error) {
	return s.payroll.ListByPeriod(ctx, scope, period, page)
}

// payrollTransitions defines the only legal status moves.
var payrollTransitions = map[models.PayrollStatus]models.PayrollStatus{
	models.PayrollDraft:    models.PayrollApproved,
	models.PayrollApproved: models.PayrollPaid,
}

// AdvancePayroll moves an entry to the next status (draft -> approved ->
// paid).
func (s *FinanceService) AdvancePayroll(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) (*models.PayrollEntry, error) {
	entry, err := s.payroll.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	next, ok := payrollTransitions[entry.Status]
	if !ok {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "status",
			Message: "cannot advance from " + string(entry.Status),
		})
	}
	entry.Status = next

	err = s.payroll.Update(ctx, scope, entry)
	s.record(ctx, scope, actor, "payroll.advance", "payroll_entry", id.String(), err)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
