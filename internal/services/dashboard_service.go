package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/cache"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// DashboardService assembles the role-gated top-level view. The view variant
// comes from the role's total mapping; stats are per-school aggregates served
// through the cache.
type DashboardService struct {
	schools    SchoolStore
	students   StudentStore
	staff      StaffStore
	classes    ClassStore
	attendance AttendanceStore
	fin        FinanceStore
	cache      cache.Cache
	ttl        time.Duration
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(schools SchoolStore, students StudentStore, staff StaffStore, classes ClassStore, attendance AttendanceStore, fin FinanceStore, c cache.Cache, ttl time.Duration) *DashboardService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{
		schools:    schools,
		students:   students,
		staff:      staff,
		classes:    classes,
		attendance: attendance,
		fin:        fin,
		cache:      c,
		ttl:        ttl,
	}
}

// DashboardView is what a screen renders at the top level.
type DashboardView struct {
	View  models.Dashboard `json:"view"`
	Stats map[string]int64 `json:"stats"`
}

// View resolves the caller's dashboard. An identity whose role fell outside
// the enumeration never reaches this point, but the mapping re-checks and
// fails closed regardless.
func (s *DashboardService) View(ctx context.Context, scope repository.Scope, identity *auth.Identity) (*DashboardView, error) {
	view, err := identity.Role.Dashboard()
	if err != nil {
		return nil, err
	}

	cacheKey := cache.GlobalKey("dashboard", string(identity.Role))
	if !scope.Unrestricted {
		cacheKey = cache.Key(scope.SchoolID, "dashboard", string(identity.Role))
	}

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached DashboardView
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.stats(ctx, scope, identity.Role)
	if err != nil {
		return nil, err
	}
	result := &DashboardView{View: view, Stats: stats}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
				log.Warn().Err(err).Msg("Failed to cache dashboard view")
			}
		}
	}

	return result, nil
}

func (s *DashboardService) stats(ctx context.Context, scope repository.Scope, role models.Role) (map[string]int64, error) {
	stats := make(map[string]int64)

	if role == models.RoleSuperAdmin && scope.Unrestricted {
		schools, err := s.schools.Count(ctx)
		if err != nil {
			return nil, err
		}
		stats["schools"] = schools
		return stats, nil
	}

	students, err := s.students.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats["students"] = students

	classes, err := s.classes.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats["classes"] = classes

	switch role {
	case models.RoleSuperAdmin, models.RoleSchoolAdmin:
		staff, err := s.staff.Count(ctx, scope)
		if err != nil {
			return nil, err
		}
		stats["staff"] = staff

		outstanding, err := s.fin.SumOutstanding(ctx, scope)
		if err != nil {
			return nil, err
		}
		stats["outstanding_cents"] = outstanding

		marked, err := s.attendance.CountForDate(ctx, scope, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		stats["attendance_today"] = marked
	case models.RoleTeacher:
		marked, err := s.attendance.CountForDate(ctx, scope, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		stats["attendance_today"] = marked
	}

	return stats, nil
}
