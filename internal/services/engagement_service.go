package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// EngagementService handles announcements and calendar events.
type EngagementService struct {
	engagement EngagementStore
	auditor
}

// NewEngagementService creates a new engagement service
func NewEngagementService(engagement EngagementStore, audits AuditStore) *EngagementService {
	return &EngagementService{
		engagement: engagement,
		auditor:    auditor{audits: audits},
	}
}

// PostAnnouncement publishes an announcement in the active school
func (s *EngagementService) PostAnnouncement(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.AnnouncementRequest) (*models.Announcement, error) {
	publishedAt := time.Now().UTC()
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Body:        req.Body,
		Audience:    req.Audience,
		PublishedAt: publishedAt,
		AuthorID:    actor.UserID,
	}

	err := s.engagement.CreateAnnouncement(ctx, scope, announcement)
	s.record(ctx, scope, actor, "announcement.post", "announcement", announcement.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

// ListAnnouncements retrieves announcements visible to the caller. Admins see
// everything; other roles see untargeted announcements plus their own
// audience.
func (s *EngagementService) ListAnnouncements(ctx context.Context, scope repository.Scope, actor *auth.Identity, page repository.Page) ([]models.Announcement, error) {
	audience := actor.Role
	if actor.Role == models.RoleSuperAdmin || actor.Role == models.RoleSchoolAdmin {
		audience = ""
	}
	return s.engagement.ListAnnouncements(ctx, scope, audience, page)
}

// DeleteAnnouncement removes an announcement
func (s *EngagementService) DeleteAnnouncement(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.engagement.DeleteAnnouncement(ctx, scope, id)
	s.record(ctx, scope, actor, "announcement.delete", "announcement", id.String(), err)
	return err
}

// CreateEvent creates a calendar event in the active school
func (s *EngagementService) CreateEvent(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.EventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:    req.Title,
		Location: req.Location,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	err := s.engagement.CreateEvent(ctx, scope, event)
	s.record(ctx, scope, actor, "event.create", "event", event.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents retrieves upcoming events
func (s *EngagementService) ListEvents(ctx context.Context, scope repository.Scope, from time.Time, page repository.Page) ([]models.Event, error) {
	return s.engagement.ListEvents(ctx, scope, from, page)
}

// DeleteEvent removes an event
func (s *EngagementService) DeleteEvent(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.engagement.DeleteEvent(ctx, scope, id)
	s.record(ctx, scope, actor, "event.delete", "event", id.String(), err)
	return err
}
