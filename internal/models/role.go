package models

import (
	"github.com/shulebase/shulebase/internal/apperrors"
)

// Role is the fixed enumeration of user roles. A user has exactly one role;
// the set of screens and mutations available is a pure function of it.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleSchoolAdmin Role = "school_admin"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
	RoleParent      Role = "parent"
)

// ParseRole validates a raw role string against the enumeration. Any value
// outside it fails with ErrUnknownRole; callers must treat that as a hard
// access-denied state, never as a default role.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleStudent, RoleParent:
		return Role(raw), nil
	}
	return "", apperrors.ErrUnknownRole
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Dashboard is the top-level view variant shown to a user.
type Dashboard string

const (
	DashboardSuperAdminConsole Dashboard = "super_admin_console"
	DashboardSchoolAdmin       Dashboard = "school_admin_dashboard"
	DashboardTeacher           Dashboard = "teacher_dashboard"
	DashboardStudent           Dashboard = "student_dashboard"
	DashboardParent            Dashboard = "parent_dashboard"
)

// Dashboard maps the role to its view variant. The mapping is total over the
// enumeration and fails closed: an unrecognized role yields ErrUnknownRole,
// not a privileged view.
func (r Role) Dashboard() (Dashboard, error) {
	switch r {
	case RoleSuperAdmin:
		return DashboardSuperAdminConsole, nil
	case RoleSchoolAdmin:
		return DashboardSchoolAdmin, nil
	case RoleTeacher:
		return DashboardTeacher, nil
	case RoleStudent:
		return DashboardStudent, nil
	case RoleParent:
		return DashboardParent, nil
	}
	return "", apperrors.ErrUnknownRole
}

// Capability is a named mutation or privileged read a role may perform.
type Capability string

const (
	CapManageSchools     Capability = "manage_schools"
	CapManageStudents    Capability = "manage_students"
	CapManageStaff       Capability = "manage_staff"
	CapManageClasses     Capability = "manage_classes"
	CapRecordAttendance  Capability = "record_attendance"
	CapViewAttendance    Capability = "view_attendance"
	CapManageFees        Capability = "manage_fees"
	CapViewInvoices      Capability = "view_invoices"
	CapPayInvoices       Capability = "pay_invoices"
	CapManagePayroll     Capability = "manage_payroll"
	CapPostAnnouncements Capability = "post_announcements"
	CapManageEvents      Capability = "manage_events"
	CapManageInventory   Capability = "manage_inventory"
	CapViewAuditLog      Capability = "view_audit_log"
)

// roleCapabilities is the static role -> capability mapping. There is no
// dynamic permission composition anywhere in the system.
var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		CapManageSchools, CapManageStudents, CapManageStaff, CapManageClasses,
		CapRecordAttendance, CapViewAttendance, CapManageFees, CapViewInvoices,
		CapManagePayroll, CapPostAnnouncements, CapManageEvents,
		CapManageInventory, CapViewAuditLog,
	},
	RoleSchoolAdmin: {
		CapManageStudents, CapManageStaff, CapManageClasses,
		CapRecordAttendance, CapViewAttendance, CapManageFees, CapViewInvoices,
		CapManagePayroll, CapPostAnnouncements, CapManageEvents,
		CapManageInventory, CapViewAuditLog,
	},
	RoleTeacher: {
		CapRecordAttendance, CapViewAttendance, CapPostAnnouncements,
	},
	RoleStudent: {
		CapViewAttendance, CapViewInvoices,
	},
	RoleParent: {
		CapViewAttendance, CapViewInvoices, CapPayInvoices,
	},
}

// Can reports whether the role holds the capability. A role outside the
// enumeration holds nothing.
func (r Role) Can(c Capability) bool {
	for _, held := range roleCapabilities[r] {
		if held == c {
			return true
		}
	}
	return false
}
