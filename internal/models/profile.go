package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the locally-stored record backing an identity issued by the
// external auth provider. Credentials never live here; UserID is the
// provider's subject. RoleName is stored raw and parsed at resolution time so
// a malformed row surfaces as a hard error instead of being coerced.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	SchoolID  *uuid.UUID `gorm:"type:uuid;index" json:"school_id,omitempty"` // nil only for super_admin
	FirstName string     `gorm:"type:varchar(80);not null" json:"first_name"`
	LastName  string     `gorm:"type:varchar(80);not null" json:"last_name"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	RoleName  string     `gorm:"column:role;type:varchar(20);not null" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
