package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/middleware"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}

// writeError is the single place taxonomy errors become HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, apperrors.ErrProfileNotFound):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "profile not found"})
	case errors.Is(err, apperrors.ErrUnknownRole):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "access denied"})
	case errors.Is(err, apperrors.ErrUnauthorizedTenantSwitch):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "unauthorized school switch"})
	case errors.Is(err, apperrors.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
	default:
		var berr *apperrors.BackendError
		if errors.As(err, &berr) {
			log.Error().Err(berr.Err).Str("op", berr.Op).Msg("Backend operation failed")
		} else {
			log.Error().Err(err).Msg("Unclassified handler error")
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeAndValidate unmarshals the body into req and runs struct validation.
func decodeAndValidate(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   "payload",
			Message: "invalid JSON body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}

// requestContext pulls the identity and scope the middleware chain resolved.
func requestContext(r *http.Request) (*auth.Identity, repository.Scope, error) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return nil, repository.Scope{}, apperrors.ErrUnauthenticated
	}
	scope, ok := middleware.GetScope(r.Context())
	if !ok {
		return nil, repository.Scope{}, apperrors.ErrUnauthenticated
	}
	return identity, scope, nil
}

// RequireCapability gates a route or route group on a role capability.
func RequireCapability(c models.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := middleware.GetIdentity(r.Context())
			if !ok {
				writeError(w, apperrors.ErrUnauthenticated)
				return
			}
			if !identity.Role.Can(c) {
				writeError(w, apperrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func urlUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   param,
			Message: "must be a UUID",
		})
	}
	return id, nil
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   name,
			Message: "must be a UUID",
		})
	}
	return &id, nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.FieldError{
			Field:   name,
			Message: "must be YYYY-MM-DD",
		})
	}
	return date, nil
}

const defaultPageLimit = 50

func pageFromQuery(r *http.Request) repository.Page {
	page := repository.Page{Limit: defaultPageLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			page.Limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			page.Offset = n
		}
	}
	return page
}
