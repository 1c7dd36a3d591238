package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/database"
	"github.com/shulebase/shulebase/internal/models"
)

// ProfileRepository manages the locally-stored user profiles backing
// provider identities.
type ProfileRepository struct{}

// NewProfileRepository creates a new profile repository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

// GetByUserID retrieves the profile for a provider user ID. This lookup runs
// before a scope exists (it is what the scope is derived from), so it is
// deliberately unscoped.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := database.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, wrapErr("get profile", err)
	}
	return &profile, nil
}

// Create creates a profile within the scope's school. Super-admin profiles
// (nil school) may only be created under the unrestricted scope.
func (r *ProfileRepository) Create(ctx context.Context, scope Scope, profile *models.Profile) error {
	if !scope.Unrestricted {
		schoolID := scope.SchoolID
		profile.SchoolID = &schoolID
	}
	if err := scope.db(ctx).Create(profile).Error; err != nil {
		return wrapErr("create profile", err)
	}
	return nil
}

// Update saves changes to a profile within scope
func (r *ProfileRepository) Update(ctx context.Context, scope Scope, profile *models.Profile) error {
	if !scope.Unrestricted && (profile.SchoolID == nil || *profile.SchoolID != scope.SchoolID) {
		return apperrors.ErrForbidden
	}
	if err := scope.db(ctx).Save(profile).Error; err != nil {
		return wrapErr("update profile", err)
	}
	return nil
}

// ListBySchool retrieves profiles belonging to the scope's school
func (r *ProfileRepository) ListBySchool(ctx context.Context, scope Scope, page Page) ([]models.Profile, error) {
	var profiles []models.Profile
	query := page.apply(scope.query(ctx).Order("last_name ASC, first_name ASC"))
	if err := query.Find(&profiles).Error; err != nil {
		return nil, wrapErr("list profiles", err)
	}
	return profiles, nil
}
