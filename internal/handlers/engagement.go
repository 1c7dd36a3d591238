package handlers

import (
	"net/http"
	"time"

	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/services"
)

// EngagementHandler serves announcements and calendar events.
type EngagementHandler struct {
	engagementService *services.EngagementService
}

func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

// PostAnnouncement publishes an announcement
func (h *EngagementHandler) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.AnnouncementRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	announcement, err := h.engagementService.PostAnnouncement(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

// ListAnnouncements retrieves announcements visible to the caller
func (h *EngagementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	announcements, err := h.engagementService.ListAnnouncements(r.Context(), scope, identity, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, announcements)
}

// DeleteAnnouncement removes an announcement
func (h *EngagementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.engagementService.DeleteAnnouncement(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateEvent creates a calendar event
func (h *EngagementHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.EventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.engagementService.CreateEvent(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents retrieves upcoming events
func (h *EngagementHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, err)
		return
	}
	if from.IsZero() {
		from = time.Now().UTC()
	}

	events, err := h.engagementService.ListEvents(r.Context(), scope, from, pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// DeleteEvent removes an event
func (h *EngagementHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.engagementService.DeleteEvent(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
