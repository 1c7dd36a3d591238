package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// PayrollRepository handles payroll entries under a scope.
type PayrollRepository struct{}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{}
}

// Create creates a payroll entry tagged with the scope's school
func (r *PayrollRepository) Create(ctx context.Context, scope Scope, entry *models.PayrollEntry) error {
	schoolID, err := scope.stamp(entry.SchoolID)
	if err != nil {
		return err
	}
	entry.SchoolID = schoolID
	if err := scope.db(ctx).Create(entry).Error; err != nil {
		return wrapErr("create payroll entry", err)
	}
	return nil
}

// GetByID retrieves a payroll entry within scope
func (r *PayrollRepository) GetByID(ctx context.Context, scope Scope, id uuid.UUID) (*models.PayrollEntry, error) {
	var entry models.PayrollEntry
	if err := scope.query(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, wrapErr("get payroll entry", err)
	}
	return &entry, nil
}

// ListByPeriod retrieves payroll entries for a period within scope; empty
// period means all periods.
func (r *PayrollRepository) ListByPeriod(ctx context.Context, scope Scope, period string, page Page) ([]models.PayrollEntry, error) {
	query := scope.query(ctx).Model(&models.PayrollEntry{})
	if period != "" {
		query = query.Where("period = ?", period)
	}

	var entries []models.PayrollEntry
	if err := page.apply(query.Order("period DESC, created_at ASC")).Find(&entries).Error; err != nil {
		return nil, wrapErr("list payroll entries", err)
	}
	return entries, nil
}

// Update saves changes to a payroll entry within scope
func (r *PayrollRepository) Update(ctx context.Context, scope Scope, entry *models.PayrollEntry) error {
	if !scope.Unrestricted && entry.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(entry).Error; err != nil {
		return wrapErr("update payroll entry", err)
	}
	return nil
}
