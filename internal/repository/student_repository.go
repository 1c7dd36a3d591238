package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// StudentRepository handles student database operations, always under a
// scope.
type StudentRepository struct{}

// NewStudentRepository creates a new student repository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{}
}

// StudentFilter narrows a student list query.
type StudentFilter struct {
	ClassID *uuid.UUID
	Status  models.StudentStatus
	Search  string // matches admission number or last name prefix
}

// Create creates a student tagged with the scope's school
func (r *StudentRepository) Create(ctx context.Context, scope Scope, student *models.Student) error {
	schoolID, err := scope.stamp(student.SchoolID)
	if err != nil {
		return err
	}
	student.SchoolID = schoolID
	if err := scope.db(ctx).Create(student).Error; err != nil {
		return wrapErr("create student", err)
	}
	return nil
}

// GetByID retrieves a student within scope
func (r *StudentRepository) GetByID(ctx context.Context, scope Scope, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := scope.query(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, wrapErr("get student", err)
	}
	return &student, nil
}

// List retrieves students within scope, filtered and paged
func (r *StudentRepository) List(ctx context.Context, scope Scope, filter StudentFilter, page Page) ([]models.Student, error) {
	query := scope.query(ctx).Model(&models.Student{})

	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := filter.Search + "%"
		query = query.Where("admission_number ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	var students []models.Student
	if err := page.apply(query.Order("last_name ASC, first_name ASC")).Find(&students).Error; err != nil {
		return nil, wrapErr("list students", err)
	}
	return students, nil
}

// Update saves changes to a student within scope
func (r *StudentRepository) Update(ctx context.Context, scope Scope, student *models.Student) error {
	if !scope.Unrestricted && student.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(student).Error; err != nil {
		return wrapErr("update student", err)
	}
	return nil
}

// Delete soft deletes a student within scope
func (r *StudentRepository) Delete(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.Student{})
	if result.Error != nil {
		return wrapErr("delete student", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the number of active students within scope
func (r *StudentRepository) Count(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	if err := scope.query(ctx).Model(&models.Student{}).
		Where("status = ?", models.StudentActive).
		Count(&count).Error; err != nil {
		return 0, wrapErr("count students", err)
	}
	return count, nil
}
