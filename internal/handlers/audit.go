package handlers

import (
	"net/http"

	"github.com/shulebase/shulebase/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// List retrieves the active school's audit trail
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.auditService.List(r.Context(), scope, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ListByResource retrieves the trail for one record
func (h *AuditHandler) ListByResource(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resourceType := r.URL.Query().Get("resource_type")
	resourceID := r.URL.Query().Get("resource_id")
	if resourceType == "" || resourceID == "" {
		h.List(w, r)
		return
	}

	entries, err := h.auditService.ListByResource(r.Context(), scope, resourceType, resourceID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
