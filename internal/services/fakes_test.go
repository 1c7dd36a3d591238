package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/payments"
	"github.com/shulebase/shulebase/internal/repository"
)

// In-memory fakes for the store interfaces. They honor scope confinement the
// same way the real repositories do: reads filter on the scope's school,
// writes stamp it.

func stampSchool(scope repository.Scope, schoolID uuid.UUID) uuid.UUID {
	if scope.Unrestricted {
		return schoolID
	}
	return scope.SchoolID
}

func inScope(scope repository.Scope, schoolID uuid.UUID) bool {
	return scope.Unrestricted || scope.SchoolID == schoolID
}

type fakeAudits struct {
	entries  []models.AuditLog
	failNext bool
}

func (f *fakeAudits) Create(ctx context.Context, scope repository.Scope, entry *models.AuditLog) error {
	if f.failNext {
		f.failNext = false
		return apperrors.Backend("create audit", context.DeadlineExceeded)
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAudits) List(ctx context.Context, scope repository.Scope, page repository.Page) ([]models.AuditLog, error) {
	out := make([]models.AuditLog, 0, len(f.entries))
	for _, e := range f.entries {
		if inScope(scope, e.SchoolID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAudits) ListByResource(ctx context.Context, scope repository.Scope, resourceType, resourceID string) ([]models.AuditLog, error) {
	out := make([]models.AuditLog, 0)
	for _, e := range f.entries {
		if inScope(scope, e.SchoolID) && e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSchools struct {
	schools    map[uuid.UUID]*models.School
	countCalls int
}

func newFakeSchools() *fakeSchools {
	return &fakeSchools{schools: make(map[uuid.UUID]*models.School)}
}

func (f *fakeSchools) Create(ctx context.Context, school *models.School) error {
	if school.ID == uuid.Nil {
		school.ID = uuid.New()
	}
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchools) GetByID(ctx context.Context, id uuid.UUID) (*models.School, error) {
	school, ok := f.schools[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return school, nil
}

func (f *fakeSchools) GetBySlug(ctx context.Context, slug string) (*models.School, error) {
	for _, s := range f.schools {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSchools) List(ctx context.Context, page repository.Page) ([]models.School, error) {
	out := make([]models.School, 0, len(f.schools))
	for _, s := range f.schools {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSchools) Update(ctx context.Context, school *models.School) error {
	if _, ok := f.schools[school.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchools) Count(ctx context.Context) (int64, error) {
	f.countCalls++
	return int64(len(f.schools)), nil
}

type fakeStudents struct {
	students   map[uuid.UUID]*models.Student
	countCalls int
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{students: make(map[uuid.UUID]*models.Student)}
}

func (f *fakeStudents) Create(ctx context.Context, scope repository.Scope, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	student.SchoolID = stampSchool(scope, student.SchoolID)
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudents) GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok || !inScope(scope, student.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return student, nil
}

func (f *fakeStudents) List(ctx context.Context, scope repository.Scope, filter repository.StudentFilter, page repository.Page) ([]models.Student, error) {
	out := make([]models.Student, 0)
	for _, s := range f.students {
		if inScope(scope, s.SchoolID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStudents) Update(ctx context.Context, scope repository.Scope, student *models.Student) error {
	existing, ok := f.students[student.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudents) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	student, ok := f.students[id]
	if !ok || !inScope(scope, student.SchoolID) {
		return apperrors.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudents) Count(ctx context.Context, scope repository.Scope) (int64, error) {
	f.countCalls++
	var n int64
	for _, s := range f.students {
		if inScope(scope, s.SchoolID) {
			n++
		}
	}
	return n, nil
}

type fakeStaff struct {
	members map[uuid.UUID]*models.StaffMember
}

func newFakeStaff() *fakeStaff {
	return &fakeStaff{members: make(map[uuid.UUID]*models.StaffMember)}
}

func (f *fakeStaff) Create(ctx context.Context, scope repository.Scope, member *models.StaffMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.SchoolID = stampSchool(scope, member.SchoolID)
	f.members[member.ID] = member
	return nil
}

func (f *fakeStaff) GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.StaffMember, error) {
	member, ok := f.members[id]
	if !ok || !inScope(scope, member.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return member, nil
}

func (f *fakeStaff) List(ctx context.Context, scope repository.Scope, activeOnly bool, page repository.Page) ([]models.StaffMember, error) {
	out := make([]models.StaffMember, 0)
	for _, m := range f.members {
		if inScope(scope, m.SchoolID) && (!activeOnly || m.IsActive) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStaff) Update(ctx context.Context, scope repository.Scope, member *models.StaffMember) error {
	existing, ok := f.members[member.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.members[member.ID] = member
	return nil
}

func (f *fakeStaff) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	member, ok := f.members[id]
	if !ok || !inScope(scope, member.SchoolID) {
		return apperrors.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeStaff) Count(ctx context.Context, scope repository.Scope) (int64, error) {
	var n int64
	for _, m := range f.members {
		if inScope(scope, m.SchoolID) {
			n++
		}
	}
	return n, nil
}

type fakeClasses struct {
	classes     map[uuid.UUID]*models.Class
	enrollments []models.Enrollment
}

func newFakeClasses() *fakeClasses {
	return &fakeClasses{classes: make(map[uuid.UUID]*models.Class)}
}

func (f *fakeClasses) Create(ctx context.Context, scope repository.Scope, class *models.Class) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	class.SchoolID = stampSchool(scope, class.SchoolID)
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClasses) GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok || !inScope(scope, class.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return class, nil
}

func (f *fakeClasses) List(ctx context.Context, scope repository.Scope, academicYear string, page repository.Page) ([]models.Class, error) {
	out := make([]models.Class, 0)
	for _, c := range f.classes {
		if inScope(scope, c.SchoolID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClasses) Update(ctx context.Context, scope repository.Scope, class *models.Class) error {
	existing, ok := f.classes[class.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClasses) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	class, ok := f.classes[id]
	if !ok || !inScope(scope, class.SchoolID) {
		return apperrors.ErrNotFound
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeClasses) Count(ctx context.Context, scope repository.Scope) (int64, error) {
	var n int64
	for _, c := range f.classes {
		if inScope(scope, c.SchoolID) {
			n++
		}
	}
	return n, nil
}

func (f *fakeClasses) Enroll(ctx context.Context, scope repository.Scope, enrollment *models.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	enrollment.SchoolID = stampSchool(scope, enrollment.SchoolID)
	f.enrollments = append(f.enrollments, *enrollment)
	return nil
}

func (f *fakeClasses) ListEnrollments(ctx context.Context, scope repository.Scope, classID uuid.UUID) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0)
	for _, e := range f.enrollments {
		if inScope(scope, e.SchoolID) && e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	records []models.AttendanceRecord
}

func (f *fakeAttendance) Record(ctx context.Context, scope repository.Scope, record *models.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.SchoolID = stampSchool(scope, record.SchoolID)
	for i, existing := range f.records {
		if existing.ClassID == record.ClassID && existing.StudentID == record.StudentID && existing.Date.Equal(record.Date) {
			f.records[i] = *record
			return nil
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendance) ListByClassDate(ctx context.Context, scope repository.Scope, classID uuid.UUID, date time.Time) ([]models.AttendanceRecord, error) {
	out := make([]models.AttendanceRecord, 0)
	for _, r := range f.records {
		if inScope(scope, r.SchoolID) && r.ClassID == classID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendance) ListByStudent(ctx context.Context, scope repository.Scope, studentID uuid.UUID, from, to time.Time, page repository.Page) ([]models.AttendanceRecord, error) {
	out := make([]models.AttendanceRecord, 0)
	for _, r := range f.records {
		if inScope(scope, r.SchoolID) && r.StudentID == studentID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendance) CountForDate(ctx context.Context, scope repository.Scope, date time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if inScope(scope, r.SchoolID) && sameDay(r.Date, date) {
			n++
		}
	}
	return n, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type fakeFinance struct {
	fees     map[uuid.UUID]*models.FeeStructure
	invoices map[uuid.UUID]*models.Invoice
	payments map[string]*models.PaymentRecord
}

func newFakeFinance() *fakeFinance {
	return &fakeFinance{
		fees:     make(map[uuid.UUID]*models.FeeStructure),
		invoices: make(map[uuid.UUID]*models.Invoice),
		payments: make(map[string]*models.PaymentRecord),
	}
}

func (f *fakeFinance) CreateFeeStructure(ctx context.Context, scope repository.Scope, fee *models.FeeStructure) error {
	if fee.ID == uuid.Nil {
		fee.ID = uuid.New()
	}
	fee.SchoolID = stampSchool(scope, fee.SchoolID)
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeFinance) GetFeeStructure(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.FeeStructure, error) {
	fee, ok := f.fees[id]
	if !ok || !inScope(scope, fee.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return fee, nil
}

func (f *fakeFinance) ListFeeStructures(ctx context.Context, scope repository.Scope, term string, page repository.Page) ([]models.FeeStructure, error) {
	out := make([]models.FeeStructure, 0)
	for _, fee := range f.fees {
		if inScope(scope, fee.SchoolID) && (term == "" || fee.Term == term) {
			out = append(out, *fee)
		}
	}
	return out, nil
}

func (f *fakeFinance) UpdateFeeStructure(ctx context.Context, scope repository.Scope, fee *models.FeeStructure) error {
	existing, ok := f.fees[fee.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeFinance) DeleteFeeStructure(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	fee, ok := f.fees[id]
	if !ok || !inScope(scope, fee.SchoolID) {
		return apperrors.ErrNotFound
	}
	delete(f.fees, id)
	return nil
}

func (f *fakeFinance) CreateInvoice(ctx context.Context, scope repository.Scope, invoice *models.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.SchoolID = stampSchool(scope, invoice.SchoolID)
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeFinance) GetInvoice(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.Invoice, error) {
	invoice, ok := f.invoices[id]
	if !ok || !inScope(scope, invoice.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

func (f *fakeFinance) ListInvoices(ctx context.Context, scope repository.Scope, filter repository.InvoiceFilter, page repository.Page) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0)
	for _, inv := range f.invoices {
		if inScope(scope, inv.SchoolID) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeFinance) UpdateInvoice(ctx context.Context, scope repository.Scope, invoice *models.Invoice) error {
	existing, ok := f.invoices[invoice.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeFinance) SumOutstanding(ctx context.Context, scope repository.Scope) (int64, error) {
	var sum int64
	for _, inv := range f.invoices {
		if inScope(scope, inv.SchoolID) && inv.Status != models.InvoiceVoid {
			sum += inv.AmountCents - inv.PaidCents
		}
	}
	return sum, nil
}

func (f *fakeFinance) CreatePayment(ctx context.Context, scope repository.Scope, payment *models.PaymentRecord) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.SchoolID = stampSchool(scope, payment.SchoolID)
	f.payments[payment.IntentRef] = payment
	return nil
}

func (f *fakeFinance) GetPaymentByIntentRef(ctx context.Context, intentRef string) (*models.PaymentRecord, error) {
	payment, ok := f.payments[intentRef]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return payment, nil
}

func (f *fakeFinance) UpdatePayment(ctx context.Context, scope repository.Scope, payment *models.PaymentRecord) error {
	existing, ok := f.payments[payment.IntentRef]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.payments[payment.IntentRef] = payment
	return nil
}

type fakePayroll struct {
	entries map[uuid.UUID]*models.PayrollEntry
}

func newFakePayroll() *fakePayroll {
	return &fakePayroll{entries: make(map[uuid.UUID]*models.PayrollEntry)}
}

func (f *fakePayroll) Create(ctx context.Context, scope repository.Scope, entry *models.PayrollEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.SchoolID = stampSchool(scope, entry.SchoolID)
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakePayroll) GetByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.PayrollEntry, error) {
	entry, ok := f.entries[id]
	if !ok || !inScope(scope, entry.SchoolID) {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (f *fakePayroll) ListByPeriod(ctx context.Context, scope repository.Scope, period string, page repository.Page) ([]models.PayrollEntry, error) {
	out := make([]models.PayrollEntry, 0)
	for _, e := range f.entries {
		if inScope(scope, e.SchoolID) && (period == "" || e.Period == period) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakePayroll) Update(ctx context.Context, scope repository.Scope, entry *models.PayrollEntry) error {
	existing, ok := f.entries[entry.ID]
	if !ok || !inScope(scope, existing.SchoolID) {
		return apperrors.ErrNotFound
	}
	f.entries[entry.ID] = entry
	return nil
}

type fakeGateway struct {
	intents int
	fail    bool
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, invoiceID uuid.UUID) (*payments.Intent, error) {
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	f.intents++
	return &payments.Intent{
		ID:           "pi_" + uuid.NewString()[:8],
		ClientSecret: "secret",
		Status:       "requires_payment_method",
	}, nil
}
