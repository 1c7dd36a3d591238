package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/database"
	"gorm.io/gorm"
)

// Scope is the tenant filter every repository call runs under. It is resolved
// once per request by the middleware layer and passed explicitly; there is no
// ambient current-school state anywhere. An unrestricted scope exists only
// for super_admin console operations.
type Scope struct {
	SchoolID     uuid.UUID
	Unrestricted bool
}

// ScopeSchool returns a scope confined to one school.
func ScopeSchool(schoolID uuid.UUID) Scope {
	return Scope{SchoolID: schoolID}
}

// ScopeAll returns the unrestricted super-admin scope.
func ScopeAll() Scope {
	return Scope{Unrestricted: true}
}

// query starts a scoped query: every read goes through here, so the
// school_id filter is applied exactly once, not per screen.
func (s Scope) query(ctx context.Context) *gorm.DB {
	db := database.DB.WithContext(ctx)
	if s.Unrestricted {
		return db
	}
	return db.Where("school_id = ?", s.SchoolID)
}

// db returns an unfiltered handle for writes; inserts are tagged via stamp
// instead of a WHERE clause.
func (s Scope) db(ctx context.Context) *gorm.DB {
	return database.DB.WithContext(ctx)
}

// stamp decides the school a new record is written under. A confined scope
// always wins over whatever the caller set, so an insert can never land in a
// foreign school. The unrestricted scope must name a school explicitly.
func (s Scope) stamp(requested uuid.UUID) (uuid.UUID, error) {
	if !s.Unrestricted {
		return s.SchoolID, nil
	}
	if requested == uuid.Nil {
		return uuid.Nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "school_id",
			Message: "required for unrestricted scope",
		})
	}
	return requested, nil
}

// wrapErr folds gorm errors into the application taxonomy.
func wrapErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return apperrors.Backend(op, err)
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}
