package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// AcademicsService handles students, staff, classes, and enrollment.
type AcademicsService struct {
	students StudentStore
	staff    StaffStore
	classes  ClassStore
	auditor
}

// NewAcademicsService creates a new academics service
func NewAcademicsService(students StudentStore, staff StaffStore, classes ClassStore, audits AuditStore) *AcademicsService {
	return &AcademicsService{
		students: students,
		staff:    staff,
		classes:  classes,
		auditor:  auditor{audits: audits},
	}
}

// CreateStudent creates a student in the active school
func (s *AcademicsService) CreateStudent(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.StudentRequest) (*models.Student, error) {
	student := &models.Student{
		AdmissionNumber: req.AdmissionNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DateOfBirth:     req.DateOfBirth,
		ClassID:         req.ClassID,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		Status:          models.StudentActive,
	}
	if req.Status != "" {
		student.Status = models.StudentStatus(req.Status)
	}

	if req.ClassID != nil {
		if _, err := s.classes.GetByID(ctx, scope, *req.ClassID); err != nil {
			return nil, err
		}
	}

	err := s.students.Create(ctx, scope, student)
	s.record(ctx, scope, actor, "student.create", "student", student.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent retrieves a student
func (s *AcademicsService) GetStudent(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Student, error) {
	return s.students.GetByID(ctx, scope, id)
}

// ListStudents retrieves students matching the filter
func (s *AcademicsService) ListStudents(ctx context.Context, scope repository.Scope, filter repository.StudentFilter, page repository.Page) ([]models.Student, error) {
	return s.students.List(ctx, scope, filter, page)
}

// UpdateStudent applies a request to an existing student
func (s *AcademicsService) UpdateStudent(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID, req *models.StudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	student.AdmissionNumber = req.AdmissionNumber
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.DateOfBirth = req.DateOfBirth
	student.ClassID = req.ClassID
	student.GuardianName = req.GuardianName
	student.GuardianPhone = req.GuardianPhone
	if req.Status != "" {
		student.Status = models.StudentStatus(req.Status)
	}

	err = s.students.Update(ctx, scope, student)
	s.record(ctx, scope, actor, "student.update", "student", id.String(), err)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent soft deletes a student
func (s *AcademicsService) DeleteStudent(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.students.Delete(ctx, scope, id)
	s.record(ctx, scope, actor, "student.delete", "student", id.String(), err)
	return err
}

// CreateStaff creates a staff member in the active school
func (s *AcademicsService) CreateStaff(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.StaffRequest) (*models.StaffMember, error) {
	member := &models.StaffMember{
		StaffNumber: req.StaffNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Title:       req.Title,
		SalaryGrade: req.SalaryGrade,
		IsActive:    true,
	}

	err := s.staff.Create(ctx, scope, member)
	s.record(ctx, scope, actor, "staff.create", "staff_member", member.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// GetStaff retrieves a staff member
func (s *AcademicsService) GetStaff(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.StaffMember, error) {
	return s.staff.GetByID(ctx, scope, id)
}

// ListStaff retrieves staff members
func (s *AcademicsService) ListStaff(ctx context.Context, scope repository.Scope, activeOnly bool, page repository.Page) ([]models.StaffMember, error) {
	return s.staff.List(ctx, scope, activeOnly, page)
}

// UpdateStaff applies a request to an existing staff member
func (s *AcademicsService) UpdateStaff(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID, req *models.StaffRequest) (*models.StaffMember, error) {
	member, err := s.staff.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	member.StaffNumber = req.StaffNumber
	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Email = req.Email
	member.Phone = req.Phone
	member.Title = req.Title
	member.SalaryGrade = req.SalaryGrade

	err = s.staff.Update(ctx, scope, member)
	s.record(ctx, scope, actor, "staff.update", "staff_member", id.String(), err)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteStaff soft deletes a staff member
func (s *AcademicsService) DeleteStaff(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.staff.Delete(ctx, scope, id)
	s.record(ctx, scope, actor, "staff.delete", "staff_member", id.String(), err)
	return err
}

// CreateClass creates a class in the active school
func (s *AcademicsService) CreateClass(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.ClassRequest) (*models.Class, error) {
	if req.HomeroomID != nil {
		if _, err := s.staff.GetByID(ctx, scope, *req.HomeroomID); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Name:         req.Name,
		Level:        req.Level,
		AcademicYear: req.AcademicYear,
		HomeroomID:   req.HomeroomID,
	}

	err := s.classes.Create(ctx, scope, class)
	s.record(ctx, scope, actor, "class.create", "class", class.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves a class
func (s *AcademicsService) GetClass(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Class, error) {
	return s.classes.GetByID(ctx, scope, id)
}

// ListClasses retrieves classes for an academic year
func (s *AcademicsService) ListClasses(ctx context.Context, scope repository.Scope, academicYear string, page repository.Page) ([]models.Class, error) {
	return s.classes.List(ctx, scope, academicYear, page)
}

// UpdateClass applies a request to an existing class
func (s *AcademicsService) UpdateClass(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID, req *models.ClassRequest) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.HomeroomID != nil {
		if _, err := s.staff.GetByID(ctx, scope, *req.HomeroomID); err != nil {
			return nil, err
		}
	}

	class.Name = req.Name
	class.Level = req.Level
	class.AcademicYear = req.AcademicYear
	class.HomeroomID = req.HomeroomID

	err = s.classes.Update(ctx, scope, class)
	s.record(ctx, scope, actor, "class.update", "class", id.String(), err)
	if err != nil {
		return nil, err
	}
	return class, nil
}

// DeleteClass deletes a class
func (s *AcademicsService) DeleteClass(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.classes.Delete(ctx, scope, id)
	s.record(ctx, scope, actor, "class.delete", "class", id.String(), err)
	return err
}

// EnrollStudent links a student to a class after checking both exist within
// scope. Duplicate enrollment is rejected by the unique index.
func (s *AcademicsService) EnrollStudent(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.EnrollmentRequest) (*models.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, scope, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.classes.GetByID(ctx, scope, req.ClassID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		EnrolledAt: time.Now().UTC(),
	}

	err := s.classes.Enroll(ctx, scope, enrollment)
	s.record(ctx, scope, actor, "class.enroll", "enrollment", enrollment.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments retrieves a class's enrollments
func (s *AcademicsService) ListEnrollments(ctx context.Context, scope repository.Scope, classID uuid.UUID) ([]models.Enrollment, error) {
	return s.classes.ListEnrollments(ctx, scope, classID)
}
