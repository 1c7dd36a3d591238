package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/database"
	"github.com/shulebase/shulebase/internal/models"
)

// SchoolRepository manages tenant records themselves. Schools are not
// school-scoped; every method here is reachable only from super_admin console
// routes.
type SchoolRepository struct{}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository() *SchoolRepository {
	return &SchoolRepository{}
}

// Create creates a new school
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	if err := database.DB.WithContext(ctx).Create(school).Error; err != nil {
		return wrapErr("create school", err)
	}
	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.School, error) {
	var school models.School
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&school).Error; err != nil {
		return nil, wrapErr("get school", err)
	}
	return &school, nil
}

// GetBySlug retrieves a school by its subdomain slug
func (r *SchoolRepository) GetBySlug(ctx context.Context, slug string) (*models.School, error) {
	var school models.School
	if err := database.DB.WithContext(ctx).Where("slug = ?", slug).First(&school).Error; err != nil {
		return nil, wrapErr("get school by slug", err)
	}
	return &school, nil
}

// List retrieves all schools, newest first
func (r *SchoolRepository) List(ctx context.Context, page Page) ([]models.School, error) {
	var schools []models.School
	query := page.apply(database.DB.WithContext(ctx).Order("created_at DESC"))
	if err := query.Find(&schools).Error; err != nil {
		return nil, wrapErr("list schools", err)
	}
	return schools, nil
}

// Update saves changes to a school
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	if err := database.DB.WithContext(ctx).Save(school).Error; err != nil {
		return wrapErr("update school", err)
	}
	return nil
}

// Count returns the number of schools
func (r *SchoolRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.School{}).Count(&count).Error; err != nil {
		return 0, wrapErr("count schools", err)
	}
	return count, nil
}
