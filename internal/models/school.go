package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionStatus tracks a school's billing standing. Set by the
// super-admin console only.
type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// School is the tenant. Every business record references exactly one school,
// and no query may cross school boundaries.
type School struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string             `gorm:"type:varchar(120);not null" json:"name"`
	Slug         string             `gorm:"type:varchar(63);uniqueIndex;not null" json:"slug"`
	Subscription SubscriptionStatus `gorm:"type:varchar(20);not null;default:'trial'" json:"subscription"`
	IsActive     bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (School) TableName() string {
	return "schools"
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
