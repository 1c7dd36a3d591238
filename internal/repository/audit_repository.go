package repository

import (
	"context"

	"github.com/shulebase/shulebase/internal/models"
)

// AuditRepository handles audit log database operations under a scope.
type AuditRepository struct{}

// NewAuditRepository creates a new audit repository
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Create creates an audit log entry tagged with the scope's school
func (r *AuditRepository) Create(ctx context.Context, scope Scope, entry *models.AuditLog) error {
	schoolID, err := scope.stamp(entry.SchoolID)
	if err != nil {
		return err
	}
	entry.SchoolID = schoolID
	if err := scope.db(ctx).Create(entry).Error; err != nil {
		return wrapErr("create audit log", err)
	}
	return nil
}

// List retrieves audit logs within scope, newest first
func (r *AuditRepository) List(ctx context.Context, scope Scope, page Page) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	query := page.apply(scope.query(ctx).Order("created_at DESC"))
	if err := query.Find(&logs).Error; err != nil {
		return nil, wrapErr("list audit logs", err)
	}
	return logs, nil
}

// ListByResource retrieves audit logs for one record within scope
func (r *AuditRepository) ListByResource(ctx context.Context, scope Scope, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := scope.query(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, wrapErr("list resource audit logs", err)
	}
	return logs, nil
}
