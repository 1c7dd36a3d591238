package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit outcome values.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditLog records one mutation attempt: who did what to which record, in
// which school, and how it ended. Written by the service layer on every
// create/update/delete.
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	ActorID      uuid.UUID `gorm:"type:uuid;index" json:"actor_id"` // profile user ID
	ActorRole    string    `gorm:"type:varchar(20)" json:"actor_role"`
	Action       string    `gorm:"type:varchar(100);not null;index" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);index" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(64);index" json:"resource_id"`
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
