package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/cache"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

type dashboardFixture struct {
	svc      *DashboardService
	schools  *fakeSchools
	students *fakeStudents
	scope    repository.Scope
	schoolID uuid.UUID
}

func newDashboardFixture(t *testing.T, c cache.Cache) *dashboardFixture {
	t.Helper()
	schoolID := uuid.New()
	scope := repository.ScopeSchool(schoolID)
	ctx := context.Background()

	schools := newFakeSchools()
	students := newFakeStudents()
	staff := newFakeStaff()
	classes := newFakeClasses()
	attendance := &fakeAttendance{}
	fin := newFakeFinance()

	schools.Create(ctx, &models.School{Name: "One", Slug: "one"})
	schools.Create(ctx, &models.School{Name: "Two", Slug: "two"})

	class := &models.Class{Name: "Grade 1", AcademicYear: "2026"}
	classes.Create(ctx, scope, class)
	for i := 0; i < 3; i++ {
		student := &models.Student{AdmissionNumber: uuid.NewString()[:8], Status: models.StudentActive}
		students.Create(ctx, scope, student)
		if i < 2 {
			attendance.Record(ctx, scope, &models.AttendanceRecord{
				ClassID:   class.ID,
				StudentID: student.ID,
				Date:      time.Now().UTC(),
				Status:    models.AttendancePresent,
			})
		}
	}
	staff.Create(ctx, scope, &models.StaffMember{StaffNumber: "T-001", IsActive: true})
	fin.CreateInvoice(ctx, scope, &models.Invoice{
		StudentID:      uuid.New(),
		FeeStructureID: uuid.New(),
		AmountCents:    100_00,
		PaidCents:      25_00,
		Status:         models.InvoicePartpaid,
		DueDate:        time.Now(),
	})

	return &dashboardFixture{
		svc:      NewDashboardService(schools, students, staff, classes, attendance, fin, c, time.Minute),
		schools:  schools,
		students: students,
		scope:    scope,
		schoolID: schoolID,
	}
}

func TestDashboardSchoolAdmin(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSchoolAdmin, SchoolID: &fx.schoolID}

	view, err := fx.svc.View(context.Background(), fx.scope, identity)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.View != models.DashboardSchoolAdmin {
		t.Errorf("view = %s, want school_admin_dashboard", view.View)
	}
	if view.Stats["students"] != 3 {
		t.Errorf("students = %d, want 3", view.Stats["students"])
	}
	if view.Stats["staff"] != 1 {
		t.Errorf("staff = %d, want 1", view.Stats["staff"])
	}
	if view.Stats["outstanding_cents"] != 75_00 {
		t.Errorf("outstanding_cents = %d, want 7500", view.Stats["outstanding_cents"])
	}
	if view.Stats["attendance_today"] != 2 {
		t.Errorf("attendance_today = %d, want 2", view.Stats["attendance_today"])
	}
}

func TestDashboardTeacher(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleTeacher, SchoolID: &fx.schoolID}

	view, err := fx.svc.View(context.Background(), fx.scope, identity)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.View != models.DashboardTeacher {
		t.Errorf("view = %s, want teacher_dashboard", view.View)
	}
	if _, ok := view.Stats["outstanding_cents"]; ok {
		t.Error("teacher view must not carry finance stats")
	}
	if view.Stats["attendance_today"] != 2 {
		t.Errorf("attendance_today = %d, want 2", view.Stats["attendance_today"])
	}
}

func TestDashboardStudent(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleStudent, SchoolID: &fx.schoolID}

	view, err := fx.svc.View(context.Background(), fx.scope, identity)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.View != models.DashboardStudent {
		t.Errorf("view = %s, want student_dashboard", view.View)
	}
	for _, key := range []string{"staff", "outstanding_cents", "attendance_today"} {
		if _, ok := view.Stats[key]; ok {
			t.Errorf("student view must not carry %s", key)
		}
	}
}

func TestDashboardSuperAdminConsole(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSuperAdmin}

	view, err := fx.svc.View(context.Background(), repository.ScopeAll(), identity)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.View != models.DashboardSuperAdminConsole {
		t.Errorf("view = %s, want super_admin_console", view.View)
	}
	if view.Stats["schools"] != 2 {
		t.Errorf("schools = %d, want 2", view.Stats["schools"])
	}
}

// A super_admin acting within one school sees that school's dashboard stats.
func TestDashboardSuperAdminScoped(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSuperAdmin}

	view, err := fx.svc.View(context.Background(), fx.scope, identity)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Stats["students"] != 3 {
		t.Errorf("students = %d, want 3", view.Stats["students"])
	}
	if _, ok := view.Stats["schools"]; ok {
		t.Error("scoped super_admin view must not carry the global schools count")
	}
}

func TestDashboardUnknownRoleFailsClosed(t *testing.T) {
	fx := newDashboardFixture(t, nil)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.Role("owner"), SchoolID: &fx.schoolID}

	view, err := fx.svc.View(context.Background(), fx.scope, identity)
	if !errors.Is(err, apperrors.ErrUnknownRole) {
		t.Fatalf("error = %v, want ErrUnknownRole", err)
	}
	if view != nil {
		t.Fatal("no view may be returned for an unrecognized role")
	}
}

func TestDashboardCaching(t *testing.T) {
	c := cache.NewMemoryCache()
	defer c.Close()
	fx := newDashboardFixture(t, c)
	identity := &auth.Identity{UserID: uuid.New(), Role: models.RoleSchoolAdmin, SchoolID: &fx.schoolID}
	ctx := context.Background()

	if _, err := fx.svc.View(ctx, fx.scope, identity); err != nil {
		t.Fatalf("first View failed: %v", err)
	}
	calls := fx.students.countCalls

	if _, err := fx.svc.View(ctx, fx.scope, identity); err != nil {
		t.Fatalf("second View failed: %v", err)
	}
	if fx.students.countCalls != calls {
		t.Errorf("second View hit the store (%d -> %d calls), want cached", calls, fx.students.countCalls)
	}
}
