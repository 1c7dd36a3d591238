package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for the flat application taxonomy. Handlers map these to
// HTTP statuses in exactly one place.
var (
	// ErrUnauthenticated means no session token was presented or the token
	// failed verification.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrProfileNotFound means the session token verified but no usable
	// profile record exists for the subject. Deliberately distinct from
	// ErrUnauthenticated so screens never confuse the two states.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUnknownRole means a role value outside the fixed enumeration was
	// encountered. Always a hard failure, never a fallback to any view.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnauthorizedTenantSwitch means the caller asked to act on a school
	// their profile does not grant access to.
	ErrUnauthorizedTenantSwitch = errors.New("unauthorized school switch")

	// ErrForbidden means the caller's role lacks the capability for the
	// requested operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the requested record does not exist within the
	// caller's scope.
	ErrNotFound = errors.New("record not found")
)

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a form-level error. It blocks submission locally and is
// never forwarded to the persistence layer.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from explicit field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FromValidator converts go-playground validator output into the
// application's ValidationError. Non-validator errors are wrapped as a single
// payload-level field error.
func FromValidator(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "payload", Message: err.Error()}}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return &ValidationError{Fields: fields}
}

// BackendError wraps a persistence or downstream-service failure. The
// original error is surfaced to the user as a notification, never as a crash.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Backend wraps err as a BackendError unless it is already part of the
// application taxonomy.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrUnauthenticated, ErrProfileNotFound, ErrUnknownRole,
		ErrUnauthorizedTenantSwitch, ErrForbidden, ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}
