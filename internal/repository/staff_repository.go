package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// StaffRepository handles staff member database operations under a scope.
type StaffRepository struct{}

// NewStaffRepository creates a new staff repository
func NewStaffRepository() *StaffRepository {
	return &StaffRepository{}
}

// Create creates a staff member tagged with the scope's school
func (r *StaffRepository) Create(ctx context.Context, scope Scope, member *models.StaffMember) error {
	schoolID, err := scope.stamp(member.SchoolID)
	if err != nil {
		return err
	}
	member.SchoolID = schoolID
	if err := scope.db(ctx).Create(member).Error; err != nil {
		return wrapErr("create staff member", err)
	}
	return nil
}

// GetByID retrieves a staff member within scope
func (r *StaffRepository) GetByID(ctx context.Context, scope Scope, id uuid.UUID) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := scope.query(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, wrapErr("get staff member", err)
	}
	return &member, nil
}

// List retrieves staff members within scope
func (r *StaffRepository) List(ctx context.Context, scope Scope, activeOnly bool, page Page) ([]models.StaffMember, error) {
	query := scope.query(ctx).Model(&models.StaffMember{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var members []models.StaffMember
	if err := page.apply(query.Order("last_name ASC, first_name ASC")).Find(&members).Error; err != nil {
		return nil, wrapErr("list staff members", err)
	}
	return members, nil
}

// Update saves changes to a staff member within scope
func (r *StaffRepository) Update(ctx context.Context, scope Scope, member *models.StaffMember) error {
	if !scope.Unrestricted && member.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(member).Error; err != nil {
		return wrapErr("update staff member", err)
	}
	return nil
}

// Delete soft deletes a staff member within scope
func (r *StaffRepository) Delete(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.StaffMember{})
	if result.Error != nil {
		return wrapErr("delete staff member", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the number of active staff members within scope
func (r *StaffRepository) Count(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	if err := scope.query(ctx).Model(&models.StaffMember{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, wrapErr("count staff members", err)
	}
	return count, nil
}
