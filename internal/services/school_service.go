package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// SchoolService backs the super-admin console: tenant lifecycle and profile
// administration.
type SchoolService struct {
	schools  SchoolStore
	profiles ProfileStore
	auditor
}

// NewSchoolService creates a new school service
func NewSchoolService(schools SchoolStore, profiles ProfileStore, audits AuditStore) *SchoolService {
	return &SchoolService{
		schools:  schools,
		profiles: profiles,
		auditor:  auditor{audits: audits},
	}
}

// CreateSchool provisions a new tenant
func (s *SchoolService) CreateSchool(ctx context.Context, actor *auth.Identity, req *models.SchoolRequest) (*models.School, error) {
	school := &models.School{
		Name:         req.Name,
		Slug:         req.Slug,
		Subscription: models.SubscriptionTrial,
		IsActive:     true,
	}
	if req.Subscription != "" {
		school.Subscription = models.SubscriptionStatus(req.Subscription)
	}

	err := s.schools.Create(ctx, school)
	if err == nil {
		// Audit lands in the new tenant's own trail.
		s.record(ctx, repository.ScopeSchool(school.ID), actor, "school.create", "school", school.ID.String(), nil)
	}
	if err != nil {
		return nil, err
	}
	return school, nil
}

// GetSchool retrieves a school by ID
func (s *SchoolService) GetSchool(ctx context.Context, id uuid.UUID) (*models.School, error) {
	return s.schools.GetByID(ctx, id)
}

// ListSchools retrieves all tenants
func (s *SchoolService) ListSchools(ctx context.Context, page repository.Page) ([]models.School, error) {
	return s.schools.List(ctx, page)
}

// UpdateSchool applies a request to an existing school
func (s *SchoolService) UpdateSchool(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.SchoolRequest) (*models.School, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Slug = req.Slug
	if req.Subscription != "" {
		school.Subscription = models.SubscriptionStatus(req.Subscription)
	}

	err = s.schools.Update(ctx, school)
	s.record(ctx, repository.ScopeSchool(school.ID), actor, "school.update", "school", id.String(), err)
	if err != nil {
		return nil, err
	}
	return school, nil
}

// DeactivateSchool disables a tenant without deleting its data. Schools are
// never hard deleted by anyone.
func (s *SchoolService) DeactivateSchool(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*models.School, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	school.IsActive = false
	err = s.schools.Update(ctx, school)
	s.record(ctx, repository.ScopeSchool(school.ID), actor, "school.deactivate", "school", id.String(), err)
	if err != nil {
		return nil, err
	}
	return school, nil
}

// CreateProfile registers a local profile for a provider identity. The role
// string is validated against the enumeration here; a bad value is rejected
// outright rather than stored and coerced later.
func (s *SchoolService) CreateProfile(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.ProfileRequest) (*models.Profile, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	if role == models.RoleSuperAdmin {
		// Super-admin profiles float above tenants and may only be created
		// from the unrestricted console scope.
		if !scope.Unrestricted {
			return nil, apperrors.ErrForbidden
		}
	} else if scope.Unrestricted && req.SchoolID == nil {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "school_id",
			Message: "required for school-bound roles",
		})
	}

	profile := &models.Profile{
		UserID:    req.UserID,
		SchoolID:  req.SchoolID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		RoleName:  string(role),
	}
	if role == models.RoleSuperAdmin {
		profile.SchoolID = nil
	}

	err = s.profiles.Create(ctx, scope, profile)
	if profile.SchoolID != nil {
		// Super-admin profiles have no tenant trail to land in.
		s.record(ctx, repository.ScopeSchool(*profile.SchoolID), actor, "profile.create", "profile", profile.ID.String(), err)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles retrieves the profiles of the active school
func (s *SchoolService) ListProfiles(ctx context.Context, scope repository.Scope, page repository.Page) ([]models.Profile, error) {
	return s.profiles.ListBySchool(ctx, scope, page)
}
