package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// ClassRepository handles class and enrollment database operations under a
// scope.
type ClassRepository struct{}

// NewClassRepository creates a new class repository
func NewClassRepository() *ClassRepository {
	return &ClassRepository{}
}

// Create creates a class tagged with the scope's school
func (r *ClassRepository) Create(ctx context.Context, scope Scope, class *models.Class) error {
	schoolID, err := scope.stamp(class.SchoolID)
	if err != nil {
		return err
	}
	class.SchoolID = schoolID
	if err := scope.db(ctx).Create(class).Error; err != nil {
		return wrapErr("create class", err)
	}
	return nil
}

// GetByID retrieves a class within scope
func (r *ClassRepository) GetByID(ctx context.Context, scope Scope, id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := scope.query(ctx).Where("id = ?", id).First(&class).Error; err != nil {
		return nil, wrapErr("get class", err)
	}
	return &class, nil
}

// List retrieves classes within scope for an academic year; empty year means
// all years.
func (r *ClassRepository) List(ctx context.Context, scope Scope, academicYear string, page Page) ([]models.Class, error) {
	query := scope.query(ctx).Model(&models.Class{})
	if academicYear != "" {
		query = query.Where("academic_year = ?", academicYear)
	}

	var classes []models.Class
	if err := page.apply(query.Order("level ASC, name ASC")).Find(&classes).Error; err != nil {
		return nil, wrapErr("list classes", err)
	}
	return classes, nil
}

// Update saves changes to a class within scope
func (r *ClassRepository) Update(ctx context.Context, scope Scope, class *models.Class) error {
	if !scope.Unrestricted && class.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(class).Error; err != nil {
		return wrapErr("update class", err)
	}
	return nil
}

// Delete hard deletes a class within scope
func (r *ClassRepository) Delete(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.Class{})
	if result.Error != nil {
		return wrapErr("delete class", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the number of classes within scope
func (r *ClassRepository) Count(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	if err := scope.query(ctx).Model(&models.Class{}).Count(&count).Error; err != nil {
		return 0, wrapErr("count classes", err)
	}
	return count, nil
}

// Enroll links a student to a class. The unique index rejects duplicates.
func (r *ClassRepository) Enroll(ctx context.Context, scope Scope, enrollment *models.Enrollment) error {
	schoolID, err := scope.stamp(enrollment.SchoolID)
	if err != nil {
		return err
	}
	enrollment.SchoolID = schoolID
	if err := scope.db(ctx).Create(enrollment).Error; err != nil {
		return wrapErr("enroll student", err)
	}
	return nil
}

// ListEnrollments retrieves enrollments for a class within scope
func (r *ClassRepository) ListEnrollments(ctx context.Context, scope Scope, classID uuid.UUID) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := scope.query(ctx).
		Where("class_id = ?", classID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, wrapErr("list enrollments", err)
	}
	return enrollments, nil
}
