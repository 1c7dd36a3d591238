package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is a tracked asset or consumable owned by one school.
type InventoryItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"school_id"`
	Name          string         `gorm:"type:varchar(160);not null" json:"name"`
	Category      string         `gorm:"type:varchar(80);index" json:"category,omitempty"`
	Quantity      int            `gorm:"not null;default:0" json:"quantity"`
	UnitCostCents int64          `gorm:"not null;default:0" json:"unit_cost_cents"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
