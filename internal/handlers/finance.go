package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/internal/services"
)

// FinanceHandler serves fee structures, invoices, payments, and payroll.
type FinanceHandler struct {
	financeService *services.FinanceService
	callbackToken  string
}

func NewFinanceHandler(financeService *services.FinanceService, callbackToken string) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		callbackToken:  callbackToken,
	}
}

// CreateFeeStructure creates a fee structure
func (h *FinanceHandler) CreateFeeStructure(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.FeeStructureRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fee, err := h.financeService.CreateFeeStructure(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fee)
}

// ListFeeStructures retrieves fee structures
func (h *FinanceHandler) ListFeeStructures(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	fees, err := h.financeService.ListFeeStructures(r.Context(), scope, r.URL.Query().Get("term"), pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fees)
}

// UpdateFeeStructure updates a fee structure
func (h *FinanceHandler) UpdateFeeStructure(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.FeeStructureRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fee, err := h.financeService.UpdateFeeStructure(r.Context(), scope, identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fee)
}

// DeleteFeeStructure deletes a fee structure
func (h *FinanceHandler) DeleteFeeStructure(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.financeService.DeleteFeeStructure(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IssueInvoice bills a student for a fee structure
func (h *FinanceHandler) IssueInvoice(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.InvoiceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	invoice, err := h.financeService.IssueInvoice(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invoice)
}

// GetInvoice retrieves an invoice
func (h *FinanceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	invoice, err := h.financeService.GetInvoice(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

// ListInvoices retrieves invoices matching the query filter
func (h *FinanceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	studentID, err := queryUUID(r, "student_id")
	if err != nil {
		writeError(w, err)
		return
	}
	filter := repository.InvoiceFilter{
		StudentID: studentID,
		Status:    models.InvoiceStatus(r.URL.Query().Get("status")),
	}

	invoices, err := h.financeService.ListInvoices(r.Context(), scope, filter, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invoices)
}

// CreatePaymentIntent opens a charge for an invoice's outstanding balance
func (h *FinanceHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	invoiceID, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.financeService.CreatePaymentIntent(r.Context(), scope, identity, invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// PaymentCallback applies the processor's verdict on an intent. No user
// session; the shared callback token authenticates the processor.
func (h *FinanceHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Callback-Token")
	if h.callbackToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.callbackToken)) != 1 {
		log.Warn().Str("remote", r.RemoteAddr).Msg("Payment callback with bad token")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid callback token"})
		return
	}

	var req models.PaymentCallbackRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.financeService.HandleCallback(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreatePayrollEntry creates a payroll entry
func (h *FinanceHandler) CreatePayrollEntry(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.PayrollRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.financeService.CreatePayrollEntry(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListPayroll retrieves payroll entries for a period
func (h *FinanceHandler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.financeService.ListPayroll(r.Context(), scope, r.URL.Query().Get("period"), pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// AdvancePayroll moves a payroll entry to its next status
func (h *FinanceHandler) AdvancePayroll(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.financeService.AdvancePayroll(r.Context(), scope, identity, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
