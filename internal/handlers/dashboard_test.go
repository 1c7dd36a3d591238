package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/middleware"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/internal/services"
)

type stubSchools struct {
	count int64
}

func (s *stubSchools) Create(ctx context.Context, school *models.School) error { return nil }
func (s *stubSchools) GetByID(ctx context.Context, id uuid.UUID) (*models.School, error) {
	return nil, nil
}
func (s *stubSchools) GetBySlug(ctx context.Context, slug string) (*models.School, error) {
	return nil, nil
}
func (s *stubSchools) List(ctx context.Context, page repository.Page) ([]models.School, error) {
	return nil, nil
}
func (s *stubSchools) Update(ctx context.Context, school *models.School) error { return nil }
func (s *stubSchools) Count(ctx context.Context) (int64, error)                { return s.count, nil }

func dashboardRequest(identity *auth.Identity, scope repository.Scope) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	ctx := middleware.WithIdentity(req.Context(), identity)
	ctx = middleware.WithScope(ctx, scope)
	return req.WithContext(ctx)
}

func TestDashboardDispatch(t *testing.T) {
	svc := services.NewDashboardService(&stubSchools{count: 4}, nil, nil, nil, nil, nil, nil, 0)
	handler := NewDashboardHandler(svc)

	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSuperAdmin}
	rec := httptest.NewRecorder()
	handler.View(rec, dashboardRequest(identity, repository.ScopeAll()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var view services.DashboardView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.View != models.DashboardSuperAdminConsole {
		t.Errorf("view = %s, want super_admin_console", view.View)
	}
	if view.Stats["schools"] != 4 {
		t.Errorf("schools = %d, want 4", view.Stats["schools"])
	}
}

// An identity carrying a role outside the enumeration gets a hard 403, never
// any dashboard.
func TestDashboardUnknownRole(t *testing.T) {
	svc := services.NewDashboardService(&stubSchools{}, nil, nil, nil, nil, nil, nil, 0)
	handler := NewDashboardHandler(svc)

	schoolID := uuid.New()
	identity := &auth.Identity{UserID: uuid.New(), Role: models.Role("owner"), SchoolID: &schoolID}
	rec := httptest.NewRecorder()
	handler.View(rec, dashboardRequest(identity, repository.ScopeSchool(schoolID)))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestDashboardWithoutSession(t *testing.T) {
	handler := NewDashboardHandler(services.NewDashboardService(&stubSchools{}, nil, nil, nil, nil, nil, nil, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.View(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireCapability(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	gate := RequireCapability(models.CapManageFees)(next)

	schoolID := uuid.New()
	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleSchoolAdmin, http.StatusNoContent},
		{models.RoleSuperAdmin, http.StatusNoContent},
		{models.RoleTeacher, http.StatusForbidden},
		{models.RoleParent, http.StatusForbidden},
		{models.Role("owner"), http.StatusForbidden},
	}
	for _, tc := range cases {
		identity := &auth.Identity{UserID: uuid.New(), Role: tc.role, SchoolID: &schoolID}
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}

	// no identity at all
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing identity: status = %d, want 401", rec.Code)
	}
}
