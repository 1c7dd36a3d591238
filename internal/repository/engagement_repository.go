package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// EngagementRepository handles announcements and events under a scope.
type EngagementRepository struct{}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository() *EngagementRepository {
	return &EngagementRepository{}
}

// CreateAnnouncement creates an announcement tagged with the scope's school
func (r *EngagementRepository) CreateAnnouncement(ctx context.Context, scope Scope, a *models.Announcement) error {
	schoolID, err := scope.stamp(a.SchoolID)
	if err != nil {
		return err
	}
	a.SchoolID = schoolID
	if err := scope.db(ctx).Create(a).Error; err != nil {
		return wrapErr("create announcement", err)
	}
	return nil
}

// ListAnnouncements retrieves announcements visible to a role within scope,
// newest first. Announcements with an empty audience are visible to everyone.
func (r *EngagementRepository) ListAnnouncements(ctx context.Context, scope Scope, audience models.Role, page Page) ([]models.Announcement, error) {
	query := scope.query(ctx).Model(&models.Announcement{}).
		Where("published_at <= ?", time.Now())
	if audience != "" {
		query = query.Where("audience = '' OR audience = ?", string(audience))
	}

	var announcements []models.Announcement
	if err := page.apply(query.Order("published_at DESC")).Find(&announcements).Error; err != nil {
		return nil, wrapErr("list announcements", err)
	}
	return announcements, nil
}

// DeleteAnnouncement hard deletes an announcement within scope
func (r *EngagementRepository) DeleteAnnouncement(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return wrapErr("delete announcement", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateEvent creates an event tagged with the scope's school
func (r *EngagementRepository) CreateEvent(ctx context.Context, scope Scope, e *models.Event) error {
	schoolID, err := scope.stamp(e.SchoolID)
	if err != nil {
		return err
	}
	e.SchoolID = schoolID
	if err := scope.db(ctx).Create(e).Error; err != nil {
		return wrapErr("create event", err)
	}
	return nil
}

// ListEvents retrieves events within scope starting after the given time
func (r *EngagementRepository) ListEvents(ctx context.Context, scope Scope, from time.Time, page Page) ([]models.Event, error) {
	query := scope.query(ctx).Model(&models.Event{})
	if !from.IsZero() {
		query = query.Where("starts_at >= ?", from)
	}

	var events []models.Event
	if err := page.apply(query.Order("starts_at ASC")).Find(&events).Error; err != nil {
		return nil, wrapErr("list events", err)
	}
	return events, nil
}

// DeleteEvent hard deletes an event within scope
func (r *EngagementRepository) DeleteEvent(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return wrapErr("delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
