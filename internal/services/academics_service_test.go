package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

func newAcademicsFixture() (*AcademicsService, *fakeStudents, *fakeClasses) {
	students := newFakeStudents()
	classes := newFakeClasses()
	return NewAcademicsService(students, newFakeStaff(), classes, &fakeAudits{}), students, classes
}

func schoolAdmin(schoolID uuid.UUID) *auth.Identity {
	return &auth.Identity{UserID: uuid.New(), Role: models.RoleSchoolAdmin, SchoolID: &schoolID}
}

func studentRequest(admission string) *models.StudentRequest {
	return &models.StudentRequest{
		AdmissionNumber: admission,
		FirstName:       "A",
		LastName:        "B",
		GuardianName:    "G",
		GuardianPhone:   "0700000000",
	}
}

// Two schools share the store; each confined scope sees only its own
// students, and the unrestricted console scope sees everything.
func TestStudentListsStayWithinSchool(t *testing.T) {
	svc, _, _ := newAcademicsFixture()
	ctx := context.Background()

	school1 := uuid.New()
	school2 := uuid.New()
	scope1 := repository.ScopeSchool(school1)
	scope2 := repository.ScopeSchool(school2)

	for _, adm := range []string{"S1-001", "S1-002"} {
		if _, err := svc.CreateStudent(ctx, scope1, schoolAdmin(school1), studentRequest(adm)); err != nil {
			t.Fatalf("CreateStudent failed: %v", err)
		}
	}
	other, err := svc.CreateStudent(ctx, scope2, schoolAdmin(school2), studentRequest("S2-001"))
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	list1, err := svc.ListStudents(ctx, scope1, repository.StudentFilter{}, repository.Page{})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(list1) != 2 {
		t.Errorf("school1 list = %d students, want 2", len(list1))
	}
	for _, s := range list1 {
		if s.SchoolID != school1 {
			t.Errorf("school1 list contains a student of school %s", s.SchoolID)
		}
	}

	list2, err := svc.ListStudents(ctx, scope2, repository.StudentFilter{}, repository.Page{})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(list2) != 1 || list2[0].ID != other.ID {
		t.Errorf("school2 list = %+v, want only its own student", list2)
	}

	all, err := svc.ListStudents(ctx, repository.ScopeAll(), repository.StudentFilter{}, repository.Page{})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unrestricted list = %d students, want 3", len(all))
	}
}

// A record of another school is indistinguishable from a missing one.
func TestForeignRecordsAreNotFound(t *testing.T) {
	svc, _, _ := newAcademicsFixture()
	ctx := context.Background()

	school1 := uuid.New()
	school2 := uuid.New()
	scope1 := repository.ScopeSchool(school1)
	scope2 := repository.ScopeSchool(school2)

	student, err := svc.CreateStudent(ctx, scope1, schoolAdmin(school1), studentRequest("S1-001"))
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	class, err := svc.CreateClass(ctx, scope1, schoolAdmin(school1), &models.ClassRequest{
		Name:         "Grade 1",
		Level:        "1",
		AcademicYear: "2026",
	})
	if err != nil {
		t.Fatalf("CreateClass failed: %v", err)
	}

	if _, err := svc.GetStudent(ctx, scope2, student.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("foreign GetStudent error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetClass(ctx, scope2, class.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("foreign GetClass error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteStudent(ctx, scope2, schoolAdmin(school2), student.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("foreign DeleteStudent error = %v, want ErrNotFound", err)
	}

	// Enrolling a foreign student into an own class fails on the student
	// lookup, so no cross-school link can be created.
	ownClass, err := svc.CreateClass(ctx, scope2, schoolAdmin(school2), &models.ClassRequest{
		Name:         "Grade 1",
		Level:        "1",
		AcademicYear: "2026",
	})
	if err != nil {
		t.Fatalf("CreateClass failed: %v", err)
	}
	if _, err := svc.EnrollStudent(ctx, scope2, schoolAdmin(school2), &models.EnrollmentRequest{
		StudentID: student.ID,
		ClassID:   ownClass.ID,
	}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("cross-school enroll error = %v, want ErrNotFound", err)
	}
}

// An insert under a confined scope lands in that school no matter what school
// the record arrived with.
func TestCreateStampsActiveSchool(t *testing.T) {
	_, students, _ := newAcademicsFixture()
	ctx := context.Background()

	schoolID := uuid.New()
	student := &models.Student{
		AdmissionNumber: "S-001",
		FirstName:       "A",
		LastName:        "B",
		SchoolID:        uuid.New(), // foreign, must be overridden
	}
	if err := students.Create(ctx, repository.ScopeSchool(schoolID), student); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if student.SchoolID != schoolID {
		t.Errorf("SchoolID = %s, want the active scope's school %s", student.SchoolID, schoolID)
	}

	got, err := students.GetByID(ctx, repository.ScopeSchool(schoolID), student.ID)
	if err != nil {
		t.Fatalf("read-back failed: %v", err)
	}
	if got.SchoolID != schoolID {
		t.Errorf("read-back SchoolID = %s, want %s", got.SchoolID, schoolID)
	}
}
