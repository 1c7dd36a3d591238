package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/models"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type sessionResponse struct {
	UserID   uuid.UUID   `json:"user_id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	SchoolID *uuid.UUID  `json:"school_id,omitempty"`
	// ActiveSchoolID is the school the current scope acts on. Empty for the
	// unrestricted super-admin console.
	ActiveSchoolID *uuid.UUID `json:"active_school_id,omitempty"`
}

// Current returns the resolved session. Reaching this handler already proves
// the token verified and a profile with a recognized role exists.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := sessionResponse{
		UserID:   identity.UserID,
		Email:    identity.Email,
		Role:     identity.Role,
		SchoolID: identity.SchoolID,
	}
	if !scope.Unrestricted {
		active := scope.SchoolID
		resp.ActiveSchoolID = &active
	}

	writeJSON(w, http.StatusOK, resp)
}
