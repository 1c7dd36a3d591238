package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// Identity is the resolved session: provider identity plus the locally-stored
// role and school. It is valid for the lifetime of one request.
type Identity struct {
	UserID   uuid.UUID   `json:"user_id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	SchoolID *uuid.UUID  `json:"school_id,omitempty"` // nil only for super_admin
}

// ProfileStore looks up the local profile record for a provider identity.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// Resolver turns an opaque session token into an Identity. The three failure
// states are kept distinct on purpose: not logged in, logged in without a
// usable profile, and a profile carrying a role outside the enumeration. None
// of them ever degrades to a default role.
type Resolver struct {
	verifier *Verifier
	profiles ProfileStore
}

// NewResolver builds a Resolver over the given verifier and profile store.
func NewResolver(verifier *Verifier, profiles ProfileStore) *Resolver {
	return &Resolver{verifier: verifier, profiles: profiles}
}

// Resolve verifies the token and loads the profile behind it.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	userID, email, err := r.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	profile, err := r.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Backend("resolve profile", err)
	}

	role, err := models.ParseRole(profile.RoleName)
	if err != nil {
		return nil, err
	}

	// Only super_admin may float without a school; anything else with a nil
	// school reference is a malformed profile.
	if role != models.RoleSuperAdmin && profile.SchoolID == nil {
		return nil, apperrors.ErrProfileNotFound
	}

	if email == "" {
		email = profile.Email
	}

	return &Identity{
		UserID:   userID,
		Email:    email,
		Role:     role,
		SchoolID: profile.SchoolID,
	}, nil
}
