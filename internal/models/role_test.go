package models

import (
	"errors"
	"testing"

	"github.com/shulebase/shulebase/internal/apperrors"
)

func TestParseRole(t *testing.T) {
	valid := []string{"super_admin", "school_admin", "teacher", "student", "parent"}
	for _, raw := range valid {
		role, err := ParseRole(raw)
		if err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", raw, err)
		}
		if string(role) != raw {
			t.Errorf("ParseRole(%q) = %q", raw, role)
		}
	}

	invalid := []string{"", "admin", "owner", "SUPER_ADMIN", "super-admin", "Teacher"}
	for _, raw := range invalid {
		if _, err := ParseRole(raw); !errors.Is(err, apperrors.ErrUnknownRole) {
			t.Errorf("ParseRole(%q) error = %v, want ErrUnknownRole", raw, err)
		}
	}
}

func TestDashboardMapping(t *testing.T) {
	cases := []struct {
		role Role
		want Dashboard
	}{
		{RoleSuperAdmin, DashboardSuperAdminConsole},
		{RoleSchoolAdmin, DashboardSchoolAdmin},
		{RoleTeacher, DashboardTeacher},
		{RoleStudent, DashboardStudent},
		{RoleParent, DashboardParent},
	}
	for _, tc := range cases {
		got, err := tc.role.Dashboard()
		if err != nil {
			t.Errorf("Dashboard(%s) returned error: %v", tc.role, err)
		}
		if got != tc.want {
			t.Errorf("Dashboard(%s) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// A role outside the enumeration must fail hard, never fall back to any view.
func TestDashboardUnknownRoleFailsClosed(t *testing.T) {
	for _, raw := range []string{"", "owner", "admin", "root"} {
		view, err := Role(raw).Dashboard()
		if !errors.Is(err, apperrors.ErrUnknownRole) {
			t.Errorf("Dashboard(%q) error = %v, want ErrUnknownRole", raw, err)
		}
		if view != "" {
			t.Errorf("Dashboard(%q) returned view %q on error", raw, view)
		}
	}
}

func TestCapabilities(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleSuperAdmin, CapManageSchools, true},
		{RoleSchoolAdmin, CapManageSchools, false},
		{RoleSchoolAdmin, CapManagePayroll, true},
		{RoleTeacher, CapRecordAttendance, true},
		{RoleTeacher, CapManageFees, false},
		{RoleStudent, CapViewInvoices, true},
		{RoleStudent, CapPayInvoices, false},
		{RoleParent, CapPayInvoices, true},
		{RoleParent, CapManageStudents, false},
		{Role("owner"), CapViewAttendance, false},
	}
	for _, tc := range cases {
		if got := tc.role.Can(tc.cap); got != tc.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}
