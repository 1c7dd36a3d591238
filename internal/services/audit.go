package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// auditor writes the audit trail for service mutations. A failed audit write
// is logged but never fails the operation it describes.
type auditor struct {
	audits AuditStore
}

func (a auditor) record(ctx context.Context, scope repository.Scope, actor *auth.Identity, action, resourceType, resourceID string, opErr error) {
	if a.audits == nil {
		return
	}

	entry := &models.AuditLog{
		SchoolID:     scope.SchoolID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       models.AuditSuccess,
	}
	if actor != nil {
		entry.ActorID = actor.UserID
		entry.ActorRole = string(actor.Role)
	} else {
		entry.ActorRole = "system"
	}
	if opErr != nil {
		entry.Status = models.AuditFailure
		entry.ErrorMessage = opErr.Error()
	}

	if err := a.audits.Create(ctx, scope, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}

// AuditService backs the audit log viewer.
type AuditService struct {
	audits AuditStore
}

// NewAuditService creates a new audit service
func NewAuditService(audits AuditStore) *AuditService {
	return &AuditService{audits: audits}
}

// List retrieves audit entries within scope
func (s *AuditService) List(ctx context.Context, scope repository.Scope, page repository.Page) ([]models.AuditLog, error) {
	return s.audits.List(ctx, scope, page)
}

// ListByResource retrieves the trail for one record within scope
func (s *AuditService) ListByResource(ctx context.Context, scope repository.Scope, resourceType, resourceID string) ([]models.AuditLog, error) {
	return s.audits.ListByResource(ctx, scope, resourceType, resourceID)
}
