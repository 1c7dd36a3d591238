package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
)

func TestResolveScopeSuperAdmin(t *testing.T) {
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSuperAdmin}

	scope, err := ResolveScope(identity, "")
	if err != nil {
		t.Fatalf("ResolveScope failed: %v", err)
	}
	if !scope.Unrestricted {
		t.Error("super_admin with no header must get the unrestricted scope")
	}

	schoolID := uuid.New()
	scope, err = ResolveScope(identity, schoolID.String())
	if err != nil {
		t.Fatalf("ResolveScope with header failed: %v", err)
	}
	if scope.Unrestricted || scope.SchoolID != schoolID {
		t.Errorf("scope = %+v, want confined to %s", scope, schoolID)
	}

	_, err = ResolveScope(identity, "not-a-uuid")
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("bad header error = %v, want ValidationError", err)
	}
}

func TestResolveScopeConfinedRoles(t *testing.T) {
	schoolID := uuid.New()
	for _, role := range []models.Role{models.RoleSchoolAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent} {
		identity := &auth.Identity{UserID: uuid.New(), Role: role, SchoolID: &schoolID}

		scope, err := ResolveScope(identity, "")
		if err != nil {
			t.Fatalf("%s: ResolveScope failed: %v", role, err)
		}
		if scope.Unrestricted || scope.SchoolID != schoolID {
			t.Errorf("%s: scope = %+v, want own school", role, scope)
		}

		// Naming their own school explicitly is allowed.
		scope, err = ResolveScope(identity, schoolID.String())
		if err != nil {
			t.Fatalf("%s: own-school header rejected: %v", role, err)
		}
		if scope.SchoolID != schoolID {
			t.Errorf("%s: scope school = %s, want %s", role, scope.SchoolID, schoolID)
		}

		// Any other school is an unauthorized switch.
		if _, err := ResolveScope(identity, uuid.New().String()); !errors.Is(err, apperrors.ErrUnauthorizedTenantSwitch) {
			t.Errorf("%s: foreign school error = %v, want ErrUnauthorizedTenantSwitch", role, err)
		}
		if _, err := ResolveScope(identity, "not-a-uuid"); !errors.Is(err, apperrors.ErrUnauthorizedTenantSwitch) {
			t.Errorf("%s: malformed header error = %v, want ErrUnauthorizedTenantSwitch", role, err)
		}
	}
}

func TestResolveScopeProfileWithoutSchool(t *testing.T) {
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleTeacher}
	if _, err := ResolveScope(identity, ""); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestSchoolScopeMiddleware(t *testing.T) {
	schoolID := uuid.New()
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleTeacher, SchoolID: &schoolID}

	var captured bool
	handler := SchoolScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := GetScope(r.Context())
		if !ok {
			t.Error("scope missing from context")
		}
		if scope.SchoolID != schoolID {
			t.Errorf("scope school = %s, want %s", scope.SchoolID, schoolID)
		}
		captured = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !captured {
		t.Fatal("handler was not reached")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSchoolScopeMiddlewareDeniesSwitch(t *testing.T) {
	schoolID := uuid.New()
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleStudent, SchoolID: &schoolID}

	handler := SchoolScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached on a denied switch")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SchoolHeader, uuid.New().String())
	req = req.WithContext(WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestSchoolScopeMiddlewareRequiresIdentity(t *testing.T) {
	handler := SchoolScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached without an identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
