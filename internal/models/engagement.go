package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a school-wide or role-targeted notice. Audience empty means
// everyone in the school.
type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID    uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Audience    string    `gorm:"type:varchar(20)" json:"audience,omitempty"` // role name or empty
	PublishedAt time.Time `gorm:"not null;index" json:"published_at"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"` // profile user ID
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Event is a dated school calendar entry.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Location  string    `gorm:"type:varchar(200)" json:"location,omitempty"`
	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
