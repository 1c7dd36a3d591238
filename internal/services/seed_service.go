package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// SeedService bootstraps a demo tenant with enough data to click through
// every screen. Operational tooling; it bypasses the HTTP layer but not the
// scoped data-access boundary.
type SeedService struct {
	schools    SchoolStore
	profiles   ProfileStore
	students   StudentStore
	staff      StaffStore
	classes    ClassStore
	attendance AttendanceStore
	fin        FinanceStore
	engagement EngagementStore
	inventory  InventoryStore
}

// NewSeedService creates a new seed service
func NewSeedService(schools SchoolStore, profiles ProfileStore, students StudentStore, staff StaffStore, classes ClassStore, attendance AttendanceStore, fin FinanceStore, engagement EngagementStore, inventory InventoryStore) *SeedService {
	return &SeedService{
		schools:    schools,
		profiles:   profiles,
		students:   students,
		staff:      staff,
		classes:    classes,
		attendance: attendance,
		fin:        fin,
		engagement: engagement,
		inventory:  inventory,
	}
}

// SeedDemo creates the demo school and its sample records. Re-running
// against an existing slug fails on the unique index rather than duplicating
// data.
func (s *SeedService) SeedDemo(ctx context.Context) (*models.School, error) {
	school := &models.School{
		Name:         "Demo Academy",
		Slug:         "demo-academy",
		Subscription: models.SubscriptionTrial,
		IsActive:     true,
	}
	if err := s.schools.Create(ctx, school); err != nil {
		return nil, fmt.Errorf("seed school: %w", err)
	}
	scope := repository.ScopeSchool(school.ID)

	adminUser := uuid.New()
	teacherUser := uuid.New()
	seedProfiles := []models.Profile{
		{UserID: adminUser, FirstName: "Amina", LastName: "Okello", Email: "admin@demo-academy.test", RoleName: string(models.RoleSchoolAdmin)},
		{UserID: teacherUser, FirstName: "David", LastName: "Mwangi", Email: "teacher@demo-academy.test", RoleName: string(models.RoleTeacher)},
		{UserID: uuid.New(), FirstName: "Grace", LastName: "Njeri", Email: "student@demo-academy.test", RoleName: string(models.RoleStudent)},
		{UserID: uuid.New(), FirstName: "Peter", LastName: "Njeri", Email: "parent@demo-academy.test", RoleName: string(models.RoleParent)},
	}
	for i := range seedProfiles {
		if err := s.profiles.Create(ctx, scope, &seedProfiles[i]); err != nil {
			return nil, fmt.Errorf("seed profile %s: %w", seedProfiles[i].Email, err)
		}
	}

	homeroom := &models.StaffMember{
		StaffNumber: "T-001",
		FirstName:   "David",
		LastName:    "Mwangi",
		Email:       "teacher@demo-academy.test",
		Title:       "Class Teacher",
		IsActive:    true,
	}
	if err := s.staff.Create(ctx, scope, homeroom); err != nil {
		return nil, fmt.Errorf("seed staff: %w", err)
	}

	year := fmt.Sprintf("%d", time.Now().Year())
	classes := make([]*models.Class, 0, 2)
	for _, name := range []string{"Grade 4 Blue", "Grade 4 Red"} {
		class := &models.Class{
			Name:         name,
			Level:        "Grade 4",
			AcademicYear: year,
			HomeroomID:   &homeroom.ID,
		}
		if err := s.classes.Create(ctx, scope, class); err != nil {
			return nil, fmt.Errorf("seed class %s: %w", name, err)
		}
		classes = append(classes, class)
	}

	names := [][2]string{
		{"Joy", "Achieng"}, {"Brian", "Kip"}, {"Faith", "Wanjiru"}, {"Samuel", "Otieno"},
		{"Mary", "Atieno"}, {"John", "Kamau"}, {"Esther", "Moraa"}, {"Daniel", "Baraka"},
	}
	today := time.Now().UTC()
	for i, name := range names {
		class := classes[i%len(classes)]
		student := &models.Student{
			AdmissionNumber: fmt.Sprintf("ADM-%03d", i+1),
			FirstName:       name[0],
			LastName:        name[1],
			ClassID:         &class.ID,
			Status:          models.StudentActive,
		}
		if err := s.students.Create(ctx, scope, student); err != nil {
			return nil, fmt.Errorf("seed student %s: %w", student.AdmissionNumber, err)
		}
		if err := s.classes.Enroll(ctx, scope, &models.Enrollment{
			StudentID:  student.ID,
			ClassID:    class.ID,
			EnrolledAt: today,
		}); err != nil {
			return nil, fmt.Errorf("seed enrollment: %w", err)
		}
		if err := s.attendance.Record(ctx, scope, &models.AttendanceRecord{
			ClassID:    class.ID,
			StudentID:  student.ID,
			Date:       today,
			Status:     models.AttendancePresent,
			RecordedBy: teacherUser,
		}); err != nil {
			return nil, fmt.Errorf("seed attendance: %w", err)
		}

		fee := &models.FeeStructure{
			ClassID:     class.ID,
			Name:        "Term 1 Tuition",
			Term:        year + "-T1",
			AmountCents: 25000_00,
			Currency:    "USD",
		}
		if i < len(classes) {
			// One fee structure per class is enough.
			if err := s.fin.CreateFeeStructure(ctx, scope, fee); err != nil {
				return nil, fmt.Errorf("seed fee structure: %w", err)
			}
			if err := s.fin.CreateInvoice(ctx, scope, &models.Invoice{
				StudentID:      student.ID,
				FeeStructureID: fee.ID,
				AmountCents:    fee.AmountCents,
				Currency:       fee.Currency,
				DueDate:        today.AddDate(0, 1, 0),
				Status:         models.InvoiceIssued,
			}); err != nil {
				return nil, fmt.Errorf("seed invoice: %w", err)
			}
		}
	}

	if err := s.engagement.CreateAnnouncement(ctx, scope, &models.Announcement{
		Title:       "Welcome to Demo Academy",
		Body:        "Term opens Monday. Fee invoices for the new term are out.",
		PublishedAt: today,
		AuthorID:    adminUser,
	}); err != nil {
		return nil, fmt.Errorf("seed announcement: %w", err)
	}
	if err := s.engagement.CreateEvent(ctx, scope, &models.Event{
		Title:    "Parents' Day",
		Location: "Main Hall",
		StartsAt: today.AddDate(0, 0, 14),
		EndsAt:   today.AddDate(0, 0, 14).Add(4 * time.Hour),
	}); err != nil {
		return nil, fmt.Errorf("seed event: %w", err)
	}

	for _, item := range []models.InventoryItem{
		{Name: "Mathematics Textbook", Category: "books", Quantity: 120, UnitCostCents: 1500},
		{Name: "Lab Microscope", Category: "equipment", Quantity: 6, UnitCostCents: 45000},
	} {
		seeded := item
		if err := s.inventory.Create(ctx, scope, &seeded); err != nil {
			return nil, fmt.Errorf("seed inventory: %w", err)
		}
	}

	log.Info().Str("school_id", school.ID.String()).Msg("Demo school seeded")
	return school, nil
}
