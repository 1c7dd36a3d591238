package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/metrics"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

const scopeKey contextKey = "school_scope"

// SchoolHeader lets a caller select the school to act on. Only super_admin
// may name a school other than their own; everyone else is pinned to their
// profile's school.
const SchoolHeader = "X-School-ID"

// ResolveScope derives the active data-access scope from an identity and the
// optional school header. It is the single place the tenant-switch rule
// lives.
func ResolveScope(identity *auth.Identity, header string) (repository.Scope, error) {
	if identity.Role == models.RoleSuperAdmin {
		if header == "" {
			return repository.ScopeAll(), nil
		}
		schoolID, err := uuid.Parse(header)
		if err != nil {
			return repository.Scope{}, apperrors.NewValidationError(apperrors.FieldError{
				Field:   "X-School-ID",
				Message: "must be a UUID",
			})
		}
		return repository.ScopeSchool(schoolID), nil
	}

	if identity.SchoolID == nil {
		// Non-super profiles without a school are rejected at resolution
		// time; treat a leak here as malformed.
		return repository.Scope{}, apperrors.ErrProfileNotFound
	}

	if header != "" {
		requested, err := uuid.Parse(header)
		if err != nil || requested != *identity.SchoolID {
			return repository.Scope{}, apperrors.ErrUnauthorizedTenantSwitch
		}
	}

	return repository.ScopeSchool(*identity.SchoolID), nil
}

// SchoolScope middleware places the resolved scope in the request context.
// Every data-fetch below this point runs tenant-filtered; no handler applies
// its own school filter.
func SchoolScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		scope, err := ResolveScope(identity, r.Header.Get(SchoolHeader))
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorizedTenantSwitch) {
				metrics.TenantSwitchDenied()
				log.Warn().
					Str("user_id", identity.UserID.String()).
					Str("role", string(identity.Role)).
					Str("requested_school", r.Header.Get(SchoolHeader)).
					Msg("Unauthorized school switch")
				writeAuthError(w, http.StatusForbidden, "unauthorized school switch")
				return
			}
			var verr *apperrors.ValidationError
			if errors.As(err, &verr) {
				writeAuthError(w, http.StatusBadRequest, "invalid "+SchoolHeader+" header")
				return
			}
			writeAuthError(w, http.StatusForbidden, "profile not found")
			return
		}

		ctx := context.WithValue(r.Context(), scopeKey, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetScope extracts the active scope from context
func GetScope(ctx context.Context) (repository.Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(repository.Scope)
	return scope, ok
}

// WithScope returns a context carrying the scope. Used by tests.
func WithScope(ctx context.Context, scope repository.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}
